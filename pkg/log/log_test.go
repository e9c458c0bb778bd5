package log

import (
	"context"
	"testing"
)

func TestTestLoggerCapturesFields(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)
	run := logger.With(ProcedureKey, "bootstrap", SeedKey, 7)
	run.Info("run started", RepetitionsKey, 100)
	run.Debug("repetition done", RepetitionKey, 0)

	entries, err := logger.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	first := entries[0]
	if first["message"] != "run started" {
		t.Errorf("message = %v", first["message"])
	}
	if first[ProcedureKey] != "bootstrap" {
		t.Errorf("missing inherited field, got %v", first[ProcedureKey])
	}
	if first[RepetitionsKey] != float64(100) {
		t.Errorf("repetitions = %v", first[RepetitionsKey])
	}
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, buf := NewTestLogger(LevelWarn)
	logger.Info("dropped")
	logger.Warn("kept")

	if buf.Len() == 0 {
		t.Fatal("expected output")
	}
	entries, err := logger.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0]["message"] != "kept" {
		t.Errorf("level filtering failed: %v", entries)
	}
	if logger.Enabled(context.Background(), LevelDebug) {
		t.Error("debug should be disabled at warn level")
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(99):  "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}

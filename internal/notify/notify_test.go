package notify

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConsole_Deliver_LogFormat(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	c := NewConsole(zap.New(core))

	if err := c.Deliver(context.Background(), "user@example.com", "1234"); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	want := "[VERIFICATION] Email: user@example.com Code: 1234"
	if entries[0].Message != want {
		t.Fatalf("message = %q, want %q", entries[0].Message, want)
	}
	if entries[0].Level != zapcore.InfoLevel {
		t.Fatalf("level = %s, want info", entries[0].Level)
	}
}

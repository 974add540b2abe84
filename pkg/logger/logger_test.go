package logger

import "testing"

func TestNewAcceptsUnknownLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		l := New("taxifleet-test", level)
		if l == nil {
			t.Fatalf("New(%q) returned nil", level)
		}
		l.With(String("level", level)).Debug("probe")
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	l.Info("ignored", Int("n", 1))
	if err := l.Sync(); err != nil {
		t.Fatalf("nop sync: %v", err)
	}
}

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		"warning":  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"":         zapcore.InfoLevel,
		"verbose":  zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: " WARN ", Format: "JSON", Name: "authgate-test", Output: &buf})

	log.Infow("auth_login_ok", "user_id", "u-1")
	log.Warnw("auth_default_secret", "env", "JWT_SECRET")
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the warn entry, got %d lines: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not json: %v", err)
	}
	if entry["level"] != "warn" || entry["msg"] != "auth_default_secret" || entry["env"] != "JWT_SECRET" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["logger"] != "authgate-test" {
		t.Fatalf("logger name = %v", entry["logger"])
	}
}

func TestNew_ConsoleDefaults(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "unknown", Output: &buf})

	log.Debugw("hidden")
	log.Infow("auth_register_ok", "user_id", "u-2")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry written at default level: %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "authgate") || !strings.Contains(out, `"user_id": "u-2"`) {
		t.Fatalf("unexpected console output %q", out)
	}
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(Options{Level: DebugLevel})
	b := Get(Options{Level: ErrorLevel, Format: FormatJSON})
	if a != b {
		t.Fatalf("expected the same logger instance")
	}
	if a.SugaredLogger == nil {
		t.Fatalf("expected initialized sugared logger")
	}
}

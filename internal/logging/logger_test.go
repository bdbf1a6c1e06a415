package logging

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize(""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be silent when no level is configured")
	}
}

func TestInitialize_FromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	defer SetLogger(nil)

	if err := InitializeFromEnv(); err != nil {
		t.Fatalf("InitializeFromEnv() error = %v", err)
	}
	core := GetLogger().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"INFO", zapcore.InfoLevel},
		{" warning ", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogRawBytes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogRawBytes("fetch status response", []byte("{\"upspeed\":\"1\"}\n"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["length"] != int64(16) {
		t.Errorf("length = %v, want 16", fields["length"])
	}
	if ascii, _ := fields["ascii"].(string); !strings.HasSuffix(ascii, "}.") {
		t.Errorf("ascii = %q, non-printable bytes should be dots", ascii)
	}
}

func TestLogRawBytes_SkippedAboveDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogRawBytes("label", []byte("data"))

	if logs.Len() != 0 {
		t.Errorf("got %d log entries at info level, want 0", logs.Len())
	}
}

func TestLogAssociationAttempt(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogAssociationAttempt("HomeNet", 2, 30, false)
	LogPoll("status", 1, 3, time.Millisecond)

	if logs.Len() != 1 {
		t.Fatalf("got %d log entries, want 1 (poll logs are debug)", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	if fields["ssid"] != "HomeNet" || fields["attempt"] != int64(2) || fields["found"] != false {
		t.Errorf("fields = %v", fields)
	}
}

func TestDumpTruncation(t *testing.T) {
	data := []byte(strings.Repeat("a", maxDumpBytes+10))

	if got := hexDump(data); !strings.HasSuffix(got, "...") || len(got) != maxDumpBytes*2+3 {
		t.Errorf("hexDump length = %d", len(got))
	}
	if got := asciiDump(data); len(got) != maxDumpBytes {
		t.Errorf("asciiDump length = %d, want %d", len(got), maxDumpBytes)
	}
}

package logging

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// captureLogOutput builds a fresh logger writing to a pipe and returns the decoded lines.
func captureLogOutput(t *testing.T, logFn func(*zap.Logger)) []map[string]any {
	t.Helper()

	resetLoggerForTest()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer func() { _ = r.Close() }()

	origStdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = origStdout }()

	logger := Logger()
	logFn(logger)
	_ = logger.Sync()

	if closeErr := w.Close(); closeErr != nil {
		t.Fatalf("failed to close writer: %v", closeErr)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read log output: %v", err)
	}

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var payload map[string]any
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			t.Fatalf("failed to unmarshal log JSON %q: %v", line, err)
		}
		entries = append(entries, payload)
	}
	return entries
}

func resetLoggerForTest() {
	loggerOnce = sync.Once{}
	baseLogger = nil
	loggerErr = nil
	atomicLevel.SetLevel(zapcore.InfoLevel)
}

func TestLoggerStructuredOutput(t *testing.T) {
	entries := captureLogOutput(t, func(l *zap.Logger) {
		l.Info("invocation served", zap.String("invocation.host", "http"))
	})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	payload := entries[0]

	if got := payload["severity"]; got != "INFO" {
		t.Fatalf("expected severity INFO, got %v", got)
	}
	if got := payload["message"]; got != "invocation served" {
		t.Fatalf("unexpected message: %v", got)
	}
	if got := payload["invocation.host"]; got != "http" {
		t.Fatalf("unexpected host field: %v", got)
	}
	if _, ok := payload["caller"]; !ok {
		t.Fatalf("expected caller field, got %v", payload)
	}

	ts, ok := payload["timestamp"].(string)
	if !ok {
		t.Fatalf("expected string timestamp, got %v", payload["timestamp"])
	}
	if _, err := time.Parse(RFC3339Micros, ts); err != nil {
		t.Fatalf("timestamp %q does not match RFC3339Micros: %v", ts, err)
	}
}

func TestEncodeSeverityMapping(t *testing.T) {
	tests := map[zapcore.Level]string{
		zapcore.DebugLevel:  "DEBUG",
		zapcore.InfoLevel:   "INFO",
		zapcore.WarnLevel:   "WARNING",
		zapcore.ErrorLevel:  "ERROR",
		zapcore.DPanicLevel: "CRITICAL",
		zapcore.PanicLevel:  "ALERT",
		zapcore.FatalLevel:  "EMERGENCY",
		zapcore.Level(42):   "DEFAULT",
	}
	for level, want := range tests {
		enc := &captureArrayEncoder{}
		encodeSeverity(level, enc)
		if len(enc.values) != 1 || enc.values[0] != want {
			t.Fatalf("level %v: expected %s, got %v", level, want, enc.values)
		}
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	entries := captureLogOutput(t, func(l *zap.Logger) {
		l.Debug("hidden")
		if err := SetLevel("debug"); err != nil {
			t.Fatalf("SetLevel: %v", err)
		}
		l.Debug("visible")
	})
	t.Cleanup(func() { atomicLevel.SetLevel(zapcore.InfoLevel) })

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(entries), entries)
	}
	if entries[0]["message"] != "visible" || entries[0]["severity"] != "DEBUG" {
		t.Fatalf("unexpected entry: %v", entries[0])
	}
}

func TestSetLevelRejectsUnknown(t *testing.T) {
	if err := SetLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestSyncAndErrAfterInit(t *testing.T) {
	resetLoggerForTest()
	if err := Err(); err != nil {
		t.Fatalf("expected nil init error, got %v", err)
	}
	if Logger() != Logger() {
		t.Fatal("expected Logger to return the same instance")
	}
	_ = Sync()
}

type captureArrayEncoder struct {
	values []string
}

func (c *captureArrayEncoder) AppendBool(bool)             {}
func (c *captureArrayEncoder) AppendByteString([]byte)     {}
func (c *captureArrayEncoder) AppendComplex128(complex128) {}
func (c *captureArrayEncoder) AppendComplex64(complex64)   {}
func (c *captureArrayEncoder) AppendFloat64(float64)       {}
func (c *captureArrayEncoder) AppendFloat32(float32)       {}
func (c *captureArrayEncoder) AppendInt(int)               {}
func (c *captureArrayEncoder) AppendInt64(int64)           {}
func (c *captureArrayEncoder) AppendInt32(int32)           {}
func (c *captureArrayEncoder) AppendInt16(int16)           {}
func (c *captureArrayEncoder) AppendInt8(int8)             {}
func (c *captureArrayEncoder) AppendString(s string)       { c.values = append(c.values, s) }
func (c *captureArrayEncoder) AppendUint(uint)             {}
func (c *captureArrayEncoder) AppendUint64(uint64)         {}
func (c *captureArrayEncoder) AppendUint32(uint32)         {}
func (c *captureArrayEncoder) AppendUint16(uint16)         {}
func (c *captureArrayEncoder) AppendUint8(uint8)           {}
func (c *captureArrayEncoder) AppendUintptr(uintptr)       {}

func TestEncodeTimeMicrosUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	ts := time.Date(2026, 10, 17, 12, 30, 45, 123456789, loc)

	enc := &captureArrayEncoder{}
	encodeTimeMicros(ts, enc)

	if len(enc.values) != 1 || enc.values[0] != "2026-10-17T09:30:45.123456Z" {
		t.Fatalf("unexpected timestamp: %v", enc.values)
	}
}

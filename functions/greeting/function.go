// Package greeting registers the greeting as an HTTP Cloud Function.
package greeting

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	host = "function"

	headerExecutionID = "Function-Execution-Id"
	headerCloudTrace  = "X-Cloud-Trace-Context"
)

func init() {
	functions.HTTP("Greeting", greetingHandler)
}

// Response is the proxy-style descriptor the function renders.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers"`
}

type payload struct {
	Message string `json:"message"`
}

var (
	body   = mustMarshal(payload{Message: "Hello, world!"})
	logger = newLogger()
)

func mustMarshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// newLogger writes JSON entries with the field names Cloud Logging parses.
func newLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncoderConfig.LevelKey = "severity"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.MessageKey = "message"
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// respond builds the fixed descriptor; the request is not inspected.
func respond() Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// requestID prefers the execution id the platform assigns, then the trace id.
func requestID(r *http.Request) string {
	if id := r.Header.Get(headerExecutionID); id != "" {
		return id
	}
	traceID, _, _ := strings.Cut(r.Header.Get(headerCloudTrace), "/")
	return traceID
}

func greetingHandler(w http.ResponseWriter, r *http.Request) {
	resp := respond()
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		logger.Warn("failed to write response", zap.Error(err))
	}

	fields := []zap.Field{
		zap.String("invocation.host", host),
		zap.Int("invocation.status", resp.StatusCode),
	}
	if id := requestID(r); id != "" {
		fields = append(fields, zap.String("invocation.request_id", id))
	}
	logger.Info("invocation served", fields...)
}

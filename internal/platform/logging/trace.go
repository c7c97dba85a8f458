package logging

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

const traceparentHeader = "traceparent"

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// cloudTrace is a traceparent header resolved against a Cloud project.
type cloudTrace struct {
	Resource string
	SpanID   string
	Sampled  bool
}

func parseTraceparent(header, projectID string) (cloudTrace, bool) {
	if projectID == "" {
		return cloudTrace{}, false
	}
	m := traceparentRe.FindStringSubmatch(header)
	if len(m) != 5 {
		return cloudTrace{}, false
	}
	flags, err := strconv.ParseUint(m[4], 16, 8)
	if err != nil {
		return cloudTrace{}, false
	}
	return cloudTrace{
		Resource: fmt.Sprintf("projects/%s/traces/%s", projectID, m[2]),
		SpanID:   m[3],
		Sampled:  flags&0x01 != 0,
	}, true
}

func (t cloudTrace) fields() []zap.Field {
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", t.Resource),
		zap.String("logging.googleapis.com/spanId", t.SpanID),
		zap.Bool("logging.googleapis.com/trace_sampled", t.Sampled),
	}
}

func loggerWithTrace(base *zap.Logger, trace cloudTrace, traced bool, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	var fields []zap.Field
	if traced {
		fields = trace.fields()
	}
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		cachedProjectID = firstNonEmpty(
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("GCLOUD_PROJECT"),
			os.Getenv("PROJECT_ID"),
		)
	})
	return cachedProjectID
}

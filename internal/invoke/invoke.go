// Package invoke serves the Lambda runtime-interface invocation endpoint, so
// the greeting can be exercised over plain HTTP the way a runtime emulator
// would call it.
package invoke

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/greeting-function/internal/greeting"
	applog "github.com/janisto/greeting-function/internal/platform/logging"
	"github.com/janisto/greeting-function/internal/platform/metrics"
	"github.com/janisto/greeting-function/internal/platform/respond"
)

// Path is the runtime-interface invocation route.
const Path = "/2015-03-31/functions/function/invocations"

// Runtime-interface headers carrying the invocation context.
const (
	HeaderRequestID   = "Lambda-Runtime-Aws-Request-Id"
	HeaderDeadline    = "Lambda-Runtime-Deadline-Ms"
	HeaderFunctionARN = "Lambda-Runtime-Invoked-Function-Arn"

	contentTypeCBOR = "application/cbor"
)

var errInvalidEvent = errors.New("invalid invocation event")

const msgEventTooLarge = "invocation event too large"

// Context is the invocation metadata passed to the responder alongside the event.
type Context struct {
	RequestID   string    `json:"requestId"`
	FunctionARN string    `json:"functionArn,omitempty"`
	Deadline    time.Time `json:"deadline,omitzero"`
}

// Register mounts the invocation endpoint on r.
func Register(r chi.Router, rec *metrics.Recorder) {
	r.Post(Path, Handler(rec))
}

// Handler accepts any JSON or CBOR event (an empty body counts as null) and
// replies 200 with the response descriptor as the payload.
func Handler(rec *metrics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		event, err := readEvent(r)
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				respond.WriteProblem(w, r, http.StatusRequestEntityTooLarge, msgEventTooLarge, err)
				return
			}
			respond.WriteProblem(w, r, http.StatusBadRequest, errInvalidEvent.Error(), err)
			return
		}
		invocation := contextFromRequest(r)

		resp := greeting.Respond(r.Context(), event, invocation)
		if err := writeDescriptor(w, r, resp); err != nil {
			applog.LogError(r.Context(), "failed to write invocation response", err)
		}

		rec.Observe(greeting.HostInvoke, resp.StatusCode, time.Since(start))
		applog.LogInvocation(r.Context(), greeting.HostInvoke, invocation.RequestID, resp.StatusCode)
	}
}

func readEvent(r *http.Request) (any, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), contentTypeCBOR) {
		var event any
		if err := cbor.Unmarshal(data, &event); err != nil {
			return nil, fmt.Errorf("decode cbor event: %w", err)
		}
		return event, nil
	}
	if !json.Valid(data) {
		return nil, errInvalidEvent
	}
	return json.RawMessage(data), nil
}

func contextFromRequest(r *http.Request) Context {
	ic := Context{
		RequestID:   r.Header.Get(HeaderRequestID),
		FunctionARN: r.Header.Get(HeaderFunctionARN),
	}
	if ic.RequestID == "" {
		ic.RequestID = chimiddleware.GetReqID(r.Context())
	}
	if ms, err := strconv.ParseInt(r.Header.Get(HeaderDeadline), 10, 64); err == nil && ms > 0 {
		ic.Deadline = time.UnixMilli(ms).UTC()
	}
	return ic
}

func writeDescriptor(w http.ResponseWriter, r *http.Request, resp greeting.ResponseDescriptor) error {
	if respond.PrefersCBOR(r.Header.Get("Accept")) {
		data, err := cbor.Marshal(resp)
		if err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		w.Header().Set("Content-Type", contentTypeCBOR)
		w.WriteHeader(http.StatusOK)
		_, err = w.Write(data)
		return err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	w.Header().Set("Content-Type", greeting.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(data)
	return err
}

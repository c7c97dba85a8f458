package hello

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"github.com/danielgtaylor/huma/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/greeting-function/internal/greeting"
	applog "github.com/janisto/greeting-function/internal/platform/logging"
	"github.com/janisto/greeting-function/internal/platform/metrics"
)

// Path is the greeting route.
const Path = "/v1/hello"

// Register wires the greeting route into api.
func Register(api huma.API, rec *metrics.Recorder) {
	huma.Register(api, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        Path,
		Summary:     "Get the greeting",
		Description: "Returns the fixed greeting exactly as the function's response descriptor describes it.",
		Tags:        []string{"Greeting"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Greeting",
				Content: map[string]*huma.MediaType{
					greeting.ContentTypeJSON: {Schema: api.OpenAPI().Components.Schemas.Schema(
						reflect.TypeOf(greeting.Payload{}), true, "Greeting")},
				},
			},
		},
	}, getHandler(rec))
}

func getHandler(rec *metrics.Recorder) func(context.Context, *struct{}) (*GetOutput, error) {
	return func(ctx context.Context, _ *struct{}) (*GetOutput, error) {
		start := time.Now()
		resp := greeting.Respond(ctx, nil, nil)

		rec.Observe(greeting.HostHTTP, resp.StatusCode, time.Since(start))
		applog.LogInvocation(ctx, greeting.HostHTTP, chimiddleware.GetReqID(ctx), resp.StatusCode)
		applog.LoggerFromContext(ctx).Debug("hello get", zap.String("path", Path))

		return &GetOutput{
			Status:      resp.StatusCode,
			ContentType: resp.Headers["Content-Type"],
			Body:        []byte(resp.Body),
		}, nil
	}
}

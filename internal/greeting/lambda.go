package greeting

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	applog "github.com/janisto/greeting-function/internal/platform/logging"
)

// Handler is the AWS Lambda entry point. It has the signature lambda.Start
// expects and never returns an error.
func Handler(ctx context.Context, event json.RawMessage) (ResponseDescriptor, error) {
	var (
		invocation any
		requestID  string
	)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		invocation = lc
		requestID = lc.AwsRequestID
		ctx = applog.ContextWithLogger(ctx, applog.Logger().With(
			zap.String("requestId", requestID),
			zap.String("functionArn", lc.InvokedFunctionArn),
		))
	}

	resp := Respond(ctx, event, invocation)
	applog.LogInvocation(ctx, HostLambda, requestID, resp.StatusCode)
	return resp, nil
}

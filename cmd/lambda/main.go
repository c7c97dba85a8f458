// Command lambda runs the greeting as an AWS Lambda function.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/janisto/greeting-function/internal/greeting"
	"github.com/janisto/greeting-function/internal/platform/config"
	applog "github.com/janisto/greeting-function/internal/platform/logging"
)

func main() {
	ctx := context.Background()
	defer func() {
		_ = applog.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "config load failed", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogWarn(ctx, "keeping default log level", zap.Error(err))
	}

	applog.LogInfo(ctx, "lambda starting", zap.String("function", cfg.FunctionName))
	lambda.Start(greeting.Handler)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"todo-lambda-api/internal/config"
	"todo-lambda-api/pkg/lambda"
	"todo-lambda-api/pkg/server"
)

// containers holds the todo store and its dependencies for the lifetime
// of the execution context. Warm invocations share the same records.
var containers = lambda.NewContextManager(newContainer)

func newContainer(ctx context.Context) (*server.Container, error) {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.ConfigureLogging(cfg); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}
	return server.NewContainer(ctx, cfg)
}

func handler(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
	return handle(ctx, containers, event), nil
}

// handle normalizes any supported event shape and dispatches it. It never
// returns an error so the caller always receives a proxy response.
func handle(ctx context.Context, cm *lambda.ContextManager[*server.Container], event json.RawMessage) events.APIGatewayProxyResponse {
	container, cold, err := cm.Get(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize execution context")
		return lambda.NewResponseBuilder(lambda.DefaultCORSHeaders()).
			InternalError(err).
			ToProxyResponse()
	}

	req := lambda.Normalize(event)

	fields := logrus.Fields{
		"request_id":  req.RequestID,
		"envelope":    req.Kind.String(),
		"cold_start":  cold,
		"invocations": cm.Invocations(),
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields["aws_request_id"] = lc.AwsRequestID
	}
	if cold {
		container.Metrics.ColdStart()
		for k, v := range config.GetServerlessConfig().LogFields() {
			fields[k] = v
		}
		logrus.WithFields(fields).Info("Cold start")
	} else {
		fields["context_age_ms"] = cm.Age().Milliseconds()
		logrus.WithFields(fields).Debug("Warm invocation")
	}

	return container.Dispatcher.Handle(ctx, req).ToProxyResponse()
}

// shutdown drops the execution context when the runtime signals SIGTERM.
func shutdown(cm *lambda.ContextManager[*server.Container]) func() {
	return func() {
		logrus.WithFields(logrus.Fields{
			"invocations":    cm.Invocations(),
			"context_age_ms": cm.Age().Milliseconds(),
		}).Info("Shutting down execution context")
		if err := cm.Cleanup(); err != nil {
			logrus.WithError(err).Error("Failed to clean up execution context")
		}
	}
}

func main() {
	awslambda.StartWithOptions(handler, awslambda.WithEnableSIGTERM(shutdown(containers)))
}

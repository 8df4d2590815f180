// Command lambda runs the translation gateway as an AWS Lambda function
// behind an API Gateway HTTP API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/sirupsen/logrus"

	"github.com/dasmlab/glosa/pkg/config"
	"github.com/dasmlab/glosa/pkg/gateway"
	"github.com/dasmlab/glosa/pkg/lambdaproxy"
	"github.com/dasmlab/glosa/pkg/server"
	"github.com/dasmlab/glosa/pkg/translate"
)

type function struct {
	proxy   *lambdaproxy.Adapter
	invoker lambdaproxy.Invoker
	name    string
	logger  *logrus.Logger
}

func main() {
	ctx := context.Background()

	v := config.New()
	v.SetDefault("log_format", "json")
	cfg, err := config.Load(v, os.Getenv("GLOSA_CONFIG"))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	logger := cfg.NewLogger()

	translator, err := translate.NewTranslator(ctx, cfg.TranslatorConfig(logger))
	if err != nil {
		logger.WithError(err).Fatal("Failed to create translator")
	}

	fn := &function{
		proxy:  lambdaproxy.New(server.NewHTTPServer(gateway.New(translator, logger), logger, cfg.Host, cfg.Port).Handler()),
		name:   os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		logger: logger,
	}
	if awsCfg, err := awsconfig.LoadDefaultConfig(ctx); err != nil {
		logger.WithError(err).Warn("AWS config unavailable, warmup fan-out disabled")
	} else {
		fn.invoker = lambdasdk.NewFromConfig(awsCfg)
	}

	lambda.Start(fn.handle)
}

func (f *function) handle(ctx context.Context, event json.RawMessage) (any, error) {
	// Warmup events must be answered before anything else touches the payload.
	if warmup, ok := lambdaproxy.IsWarmupEvent(event); ok {
		resp := lambdaproxy.HandleWarmup(ctx, warmup, f.invoker, f.name)
		f.logger.WithFields(logrus.Fields{
			"instances_warmed": resp.InstancesWarmed,
		}).Debug("Handled warmup event")
		return resp, nil
	}

	var req events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return f.proxy.Proxy(ctx, req)
}

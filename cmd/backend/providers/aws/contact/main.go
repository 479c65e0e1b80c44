// Package main implements the AWS Lambda function behind the contact form.
// It stores each submission in DynamoDB and sends the two notification emails.
package main

import (
	"context"
	"os"

	"github.com/runvoy/contactform/internal/app"
	"github.com/runvoy/contactform/internal/config"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/logger"
	"github.com/runvoy/contactform/internal/providers/aws/lambdaapi"
	"github.com/runvoy/contactform/internal/server"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	cfg := config.MustLoad()
	log := logger.Initialize(constants.Production, cfg.GetLogLevel())
	ctx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)

	a, err := app.Initialize(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Error("failed to initialize contact handler", "error", err)
		os.Exit(1)
	}

	router := server.NewRouter(a.Handler, nil, cfg.RequestTimeout, log)
	handler, err := lambdaapi.NewHandler(cfg.LambdaAdapter, a.Handler, router, cfg.RequestTimeout)
	if err != nil {
		log.Error("failed to create lambda handler", "error", err)
		os.Exit(1)
	}

	log.With("version", *constants.GetVersion()).Debug("starting contact Lambda handler",
		"adapter", cfg.LambdaAdapter)
	lambda.Start(handler)
}

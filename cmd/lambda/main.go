package main

import (
	"context"
	"log"

	"hello_slackbot/internal/config"
	"hello_slackbot/internal/handler"
	"hello_slackbot/internal/logger"
	"hello_slackbot/internal/server"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

var ginLambda *ginadapter.GinLambda

func handleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return ginLambda.ProxyWithContext(ctx, req)
}

func initGinLambda(ctx context.Context, cfg *config.Config, opts ...handler.Option) error {
	gin.SetMode(gin.ReleaseMode)
	engine, err := server.NewEngine(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	ginLambda = ginadapter.New(engine)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := initGinLambda(context.Background(), cfg); err != nil {
		log.Fatalf("Failed to initialize handler: %v", err)
	}
	lambda.Start(handleRequest)
}

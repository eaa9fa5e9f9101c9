// Package function is the Google Cloud Functions entrypoint of the bot.
package function

import (
	"context"
	"net/http"
	"sync"

	"hello_slackbot/internal/config"
	"hello_slackbot/internal/logger"
	"hello_slackbot/internal/server"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EntryPoint is the function name to deploy with, e.g.
// gcloud functions deploy hello_slackbot --entry-point=hello_slackbot
const EntryPoint = "hello_slackbot"

var (
	setupOnce sync.Once
	engine    *gin.Engine
	setupErr  error
)

func init() {
	functions.HTTP(EntryPoint, HelloSlackbot)
}

// HelloSlackbot hands every request to the gin engine, which verifies the
// Slack signature, dispatches the event and writes the response.
func HelloSlackbot(w http.ResponseWriter, r *http.Request) {
	setupOnce.Do(setup)
	if setupErr != nil {
		logger.GetLogger().Error("function is not configured", zap.Error(setupErr))
		http.Error(w, "function is not configured", http.StatusInternalServerError)
		return
	}
	engine.ServeHTTP(w, r)
}

// setup runs on the first request rather than in init, so a missing
// variable is reported in the logs instead of failing the deployment.
func setup() {
	cfg, err := config.Load()
	if err != nil {
		setupErr = err
		return
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		setupErr = err
		return
	}

	gin.SetMode(gin.ReleaseMode)
	engine, setupErr = server.NewEngine(context.Background(), cfg)
}

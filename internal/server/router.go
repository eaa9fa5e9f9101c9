package server

import (
	"context"
	"fmt"
	"net/http"

	"hello_slackbot/internal/config"
	"hello_slackbot/internal/handler"
	"hello_slackbot/internal/logger"
	"hello_slackbot/internal/storage"

	"github.com/gin-gonic/gin"
)

// EventsPath is where Slack sends Events API and interactivity requests.
// Cloud Functions deliver requests to "/", which is routed the same way.
const EventsPath = "/slack/events"

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthCheck reports that the process is serving
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// SetupRouter wires the middleware chain and routes around h
func SetupRouter(cfg *config.Config, h *handler.SlackHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinLogMiddleware())

	r.GET("/health", HealthCheck)

	// Slack endpoints require a valid request signature
	slackAPI := r.Group("/")
	{
		slackAPI.Use(handler.VerifySlackSignature(cfg.SlackSigningSecret))
		slackAPI.Use(handler.HandleSlackRetry())

		slackAPI.POST("/", h.HandleRequest)
		slackAPI.POST(EventsPath, h.HandleRequest)
	}

	return r
}

// NewEngine builds the full gin engine from cfg: event archive, Slack client, routes.
// The global logger should be initialized first.
func NewEngine(ctx context.Context, cfg *config.Config, opts ...handler.Option) (*gin.Engine, error) {
	archive, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create event archive: %w", err)
	}

	opts = append([]handler.Option{handler.WithArchive(archive)}, opts...)
	return SetupRouter(cfg, handler.NewSlackHandler(cfg, opts...)), nil
}

package handler

import (
	"bytes"
	"io"
	"net/http"

	"hello_slackbot/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// HandleSlackRetry is a middleware that handles Slack retry requests
func HandleSlackRetry() gin.HandlerFunc {
	return func(c *gin.Context) {
		retryNum := c.GetHeader("X-Slack-Retry-Num")
		retryReason := c.GetHeader("X-Slack-Retry-Reason")

		if retryNum != "" {
			logger.GetLogger().Info("slack retry request",
				zap.String("retry_num", retryNum),
				zap.String("retry_reason", retryReason))
			c.String(http.StatusOK, "ok (retry skipped)")
			c.Abort()
			return
		}
		c.Next()
	}
}

// VerifySlackSignature rejects requests that are not signed with signingSecret.
// See https://api.slack.com/authentication/verifying-requests-from-slack.
func VerifySlackSignature(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.GetLogger().Error("failed to read request body", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to read body"})
			return
		}
		// restore the body for the handlers
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		sv, err := slack.NewSecretsVerifier(c.Request.Header, signingSecret)
		if err != nil {
			logger.GetLogger().Warn("invalid signature headers", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid signature headers"})
			return
		}
		if _, err := sv.Write(body); err != nil {
			logger.GetLogger().Error("failed to hash request body", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify signature"})
			return
		}
		if err := sv.Ensure(); err != nil {
			logger.GetLogger().Warn("signature mismatch", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "signature mismatch"})
			return
		}

		c.Next()
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"hello_slackbot/internal/logger"
	"hello_slackbot/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"
)

// HandleRequest serves both Events API callbacks and interactivity payloads.
// Listeners run before the response is written, so a cloud function is not
// frozen while replies are still being posted.
func (h *SlackHandler) HandleRequest(c *gin.Context) {
	logger := logger.GetLogger().With(zap.String("request_id", c.GetString(logger.RequestIDKey)))

	// Read request body
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		logger.Error("empty request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	var ev *model.IncomingEvent
	if c.ContentType() == gin.MIMEPOSTForm {
		form, err := url.ParseQuery(string(body))
		if err != nil {
			logger.Error("failed to parse form body", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse form body"})
			return
		}

		// https://api.slack.com/interactivity/slash-commands#ssl_check
		if form.Get("ssl_check") == "1" {
			c.Status(http.StatusOK)
			return
		}

		ev, err = interactionEvent(form.Get("payload"))
		if err != nil {
			logger.Error("failed to parse slack interaction", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse slack interaction"})
			return
		}
	} else {
		// Parse the Slack event
		eventsAPIEvent, err := slackevents.ParseEvent(
			json.RawMessage(body),
			slackevents.OptionNoVerifyToken(),
		)
		if err != nil {
			logger.Error("failed to parse slack event", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse slack event"})
			return
		}

		switch eventsAPIEvent.Type {
		case slackevents.URLVerification:
			var challenge *slackevents.ChallengeResponse
			if err := json.Unmarshal(body, &challenge); err != nil || challenge == nil {
				logger.Error("failed to unmarshal challenge", zap.Error(err))
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse challenge"})
				return
			}
			c.String(http.StatusOK, challenge.Challenge)
			return
		case slackevents.CallbackEvent:
			ev = callbackEvent(eventsAPIEvent, body)
		default:
			logger.Warn("unsupported request type", zap.String("type", eventsAPIEvent.Type))
		}
	}

	if ev == nil {
		c.Status(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	self, err := h.identity.identity(ctx)
	if err != nil {
		logger.Error("failed to resolve bot identity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve bot identity"})
		return
	}
	if ignoredEvent(ev, self) {
		c.Status(http.StatusOK)
		return
	}

	err = h.handleEvent(ctx, ev)
	h.archiveEvent(c.Request.Context(), logger, ev)
	if err != nil {
		logger.Error("failed to handle event",
			zap.Stringer("kind", ev.Kind),
			zap.String("event_type", ev.Type),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to handle event"})
		return
	}

	// An empty 200 is the acknowledgment for interactive payloads as well
	c.Status(http.StatusOK)
}

func (h *SlackHandler) handleEvent(ctx context.Context, ev *model.IncomingEvent) error {
	reply, err := h.dispatcher.Dispatch(ctx, ev)
	if err != nil {
		return err
	}
	return h.deliver(ctx, reply)
}

// archiveEvent keeps the raw event after the replies were delivered. It has its
// own deadline, so a slow archive never eats into the Slack API timeout.
func (h *SlackHandler) archiveEvent(parent context.Context, log *zap.Logger, ev *model.IncomingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), h.archiveTimeout)
	defer cancel()

	if err := h.archive.Archive(ctx, ev); err != nil {
		log.Warn("failed to archive event", zap.Error(err))
	}
}

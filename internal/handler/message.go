package handler

import (
	"context"
	"errors"
	"fmt"

	"hello_slackbot/internal/logger"
	"hello_slackbot/internal/model"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

var errNoChannel = errors.New("response has no channel")

// Messenger delivers outgoing responses to Slack
type Messenger interface {
	Send(ctx context.Context, msg model.OutgoingResponse) error
}

// SlackMessenger posts responses with chat.postMessage
type SlackMessenger struct {
	api *slack.Client
}

// NewSlackMessenger creates a Messenger backed by the Slack Web API
func NewSlackMessenger(api *slack.Client) *SlackMessenger {
	return &SlackMessenger{api: api}
}

// Send posts msg to its channel. Blocks are sent with Text as the notification fallback.
func (m *SlackMessenger) Send(ctx context.Context, msg model.OutgoingResponse) error {
	if msg.Channel == "" {
		return errNoChannel
	}

	opts := []slack.MsgOption{slack.MsgOptionText(msg.Text, false)}
	if msg.IsBlocks() {
		opts = append(opts, slack.MsgOptionBlocks(msg.Blocks...))
	}

	_, ts, err := m.api.PostMessageContext(ctx, msg.Channel, opts...)
	if err != nil {
		logger.GetLogger().Error(fmt.Sprintf("failed to post message due to %s", err))
		return fmt.Errorf("failed to post message: %w", err)
	}

	logger.GetLogger().Debug("posted message", zap.String("channel", msg.Channel), zap.String("ts", ts))
	return nil
}

// deliver sends every message of reply in order, stopping at the first failure
func (h *SlackHandler) deliver(ctx context.Context, reply *model.Reply) error {
	if reply == nil {
		return nil
	}
	for _, msg := range reply.Messages {
		if err := h.messenger.Send(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

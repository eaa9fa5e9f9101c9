package handler

import (
	"context"
	"fmt"
	"sync"

	"hello_slackbot/internal/model"

	"github.com/slack-go/slack"
)

// botIdentity holds the IDs Slack uses for this bot's own posts
type botIdentity struct {
	UserID string
	BotID  string
}

func (b botIdentity) isSelf(ev *model.IncomingEvent) bool {
	if b.BotID != "" && ev.BotID == b.BotID {
		return true
	}
	return b.UserID != "" && ev.User == b.UserID
}

// AuthTester is the subset of the Slack client used to learn the bot's identity
type AuthTester interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
}

// identityResolver calls auth.test until it succeeds once, then caches the result
type identityResolver struct {
	auth AuthTester

	mu       sync.Mutex
	resolved bool
	self     botIdentity
}

func (r *identityResolver) identity(ctx context.Context) (botIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved || r.auth == nil {
		return r.self, nil
	}

	resp, err := r.auth.AuthTestContext(ctx)
	if err != nil {
		return botIdentity{}, fmt.Errorf("failed to get bot info: %w", err)
	}

	r.self = botIdentity{UserID: resp.UserID, BotID: resp.BotID}
	r.resolved = true
	return r.self, nil
}

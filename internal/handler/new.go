package handler

import (
	"time"

	"hello_slackbot/internal/config"
	"hello_slackbot/internal/dispatcher"
	"hello_slackbot/internal/logger"
	"hello_slackbot/internal/storage"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	archiveTimeout = 5 * time.Second
)

type SlackHandler struct {
	dispatcher *dispatcher.Dispatcher
	messenger  Messenger
	archive    storage.EventArchive
	identity   *identityResolver

	timeout        time.Duration
	archiveTimeout time.Duration
}

// Option customizes a SlackHandler
type Option func(*SlackHandler)

// WithMessenger replaces the Slack Web API messenger
func WithMessenger(m Messenger) Option {
	return func(h *SlackHandler) {
		h.messenger = m
	}
}

// WithArchive sets where raw event bodies are kept
func WithArchive(a storage.EventArchive) Option {
	return func(h *SlackHandler) {
		h.archive = a
	}
}

// WithBotIdentity sets the bot's own user and bot IDs instead of asking auth.test
func WithBotIdentity(userID, botID string) Option {
	return func(h *SlackHandler) {
		h.identity = &identityResolver{resolved: true, self: botIdentity{UserID: userID, BotID: botID}}
	}
}

// WithAuthTester sets the client asked for the bot's identity on the first event
func WithAuthTester(a AuthTester) Option {
	return func(h *SlackHandler) {
		h.identity = &identityResolver{auth: a}
	}
}

// NewSlackHandler creates the handler and registers the bot's listeners
func NewSlackHandler(cfg *config.Config, opts ...Option) *SlackHandler {
	h := &SlackHandler{
		dispatcher: dispatcher.New(dispatcher.WithLogger(logger.GetLogger())),
		archive:    storage.NopArchive{},
		timeout:    cfg.SlackAPITimeout,

		archiveTimeout: archiveTimeout,
	}
	if h.timeout <= 0 {
		h.timeout = defaultTimeout
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.messenger == nil {
		api := slack.New(
			cfg.SlackBotToken,
			slack.OptionDebug(cfg.SlackDebug),
			slack.OptionLog(zap.NewStdLog(logger.GetLogger().Named("slack"))),
		)
		h.messenger = NewSlackMessenger(api)
		if h.identity == nil {
			h.identity = &identityResolver{auth: api}
		}
	}
	if h.identity == nil {
		h.identity = &identityResolver{}
	}

	registerListeners(h.dispatcher)
	return h
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hello_slackbot/internal/model"

	"github.com/slack-go/slack"
)

type fakeAuthTester struct {
	calls int
	errs  []error
	resp  *slack.AuthTestResponse
}

func (f *fakeAuthTester) AuthTestContext(_ context.Context) (*slack.AuthTestResponse, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.resp, nil
}

func TestIdentityResolverRetriesThenCaches(t *testing.T) {
	auth := &fakeAuthTester{
		errs: []error{errors.New("ratelimited")},
		resp: &slack.AuthTestResponse{UserID: "UBOT", BotID: "BBOT"},
	}
	r := &identityResolver{auth: auth}
	ctx := context.Background()

	if _, err := r.identity(ctx); err == nil {
		t.Fatal("expected the first auth.test failure to surface")
	}

	for i := 0; i < 2; i++ {
		self, err := r.identity(ctx)
		if err != nil {
			t.Fatalf("identity: %v", err)
		}
		if self.UserID != "UBOT" || self.BotID != "BBOT" {
			t.Errorf("identity = %+v", self)
		}
	}
	if auth.calls != 2 {
		t.Errorf("auth.test called %d times, want 2", auth.calls)
	}
}

func TestIsSelf(t *testing.T) {
	self := botIdentity{UserID: "UBOT", BotID: "BBOT"}

	tests := []struct {
		name string
		ev   model.IncomingEvent
		want bool
	}{
		{name: "own_bot_id", ev: model.IncomingEvent{BotID: "BBOT"}, want: true},
		{name: "own_user_id", ev: model.IncomingEvent{User: "UBOT"}, want: true},
		{name: "other_bot", ev: model.IncomingEvent{BotID: "B_OTHER", User: "U_OTHER"}},
		{name: "user", ev: model.IncomingEvent{User: "U1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := self.isSelf(&tt.ev); got != tt.want {
				t.Errorf("isSelf = %v, want %v", got, tt.want)
			}
		})
	}

	if (botIdentity{}).isSelf(&model.IncomingEvent{}) {
		t.Error("an unresolved identity matched an event without IDs")
	}
}

func TestAuthFailureReturns500(t *testing.T) {
	bot := newTestBot(t)
	h := NewSlackHandler(testConfig(),
		WithMessenger(bot.messenger),
		WithAuthTester(&fakeAuthTester{errs: []error{errors.New("invalid_auth")}}),
	)
	bot.router = newTestRouter(h)

	w := bot.postEvent(map[string]any{"type": "app_mention", "user": "U1", "text": "<@UBOT>", "channel": "C1"})
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if len(bot.messenger.sent) != 0 {
		t.Errorf("sent %+v, want nothing", bot.messenger.sent)
	}
}

package dispatcher

import (
	"context"
	"errors"
	"testing"

	"hello_slackbot/internal/model"
)

func textReply(text string) HandlerFunc {
	return func(_ context.Context, ev *model.IncomingEvent) (*model.Reply, error) {
		return &model.Reply{Messages: []model.OutgoingResponse{{Channel: ev.Channel, Text: text}}}, nil
	}
}

func newTestDispatcher() *Dispatcher {
	d := New()
	d.Message("hello", textReply("message"))
	d.Action("button_click", textReply("action"))
	d.Event("app_mention", textReply("mention"))
	return d
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name string
		ev   *model.IncomingEvent
		want string // empty means no reply
	}{
		{
			name: "message_with_keyword",
			ev:   &model.IncomingEvent{Kind: model.KindMessage, Type: "message", Text: "hello team"},
			want: "message",
		},
		{
			name: "message_keyword_mid_word",
			ev:   &model.IncomingEvent{Kind: model.KindMessage, Type: "message", Text: "say hellooo"},
			want: "message",
		},
		{
			name: "message_keyword_is_case_sensitive",
			ev:   &model.IncomingEvent{Kind: model.KindMessage, Type: "message", Text: "Hello team"},
		},
		{
			name: "message_without_keyword",
			ev:   &model.IncomingEvent{Kind: model.KindMessage, Type: "message", Text: "good morning"},
		},
		{
			name: "action_match",
			ev:   &model.IncomingEvent{Kind: model.KindAction, Type: "block_actions", ActionID: "button_click"},
			want: "action",
		},
		{
			name: "action_other_id",
			ev:   &model.IncomingEvent{Kind: model.KindAction, Type: "block_actions", ActionID: "other"},
		},
		{
			name: "mention",
			ev:   &model.IncomingEvent{Kind: model.KindEvent, Type: "app_mention", Text: "<@UBOT> hi"},
			want: "mention",
		},
		{
			name: "mention_text_does_not_trigger_message_listener",
			ev:   &model.IncomingEvent{Kind: model.KindEvent, Type: "app_mention", Text: "<@UBOT> hello"},
			want: "mention",
		},
		{
			name: "unregistered_event_type",
			ev:   &model.IncomingEvent{Kind: model.KindEvent, Type: "reaction_added"},
		},
	}

	d := newTestDispatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Dispatch(context.Background(), tt.ev)
			if err != nil {
				t.Fatalf("Dispatch() error = %v", err)
			}
			if tt.want == "" {
				if got != nil {
					t.Errorf("Dispatch() = %+v, want nil", got)
				}
				return
			}
			if got == nil || len(got.Messages) != 1 {
				t.Fatalf("Dispatch() = %+v, want exactly one message", got)
			}
			if got.Messages[0].Text != tt.want {
				t.Errorf("Dispatch() text = %q, want %q", got.Messages[0].Text, tt.want)
			}
		})
	}
}

func TestDispatchFirstMatchWins(t *testing.T) {
	d := New()
	d.Message("hello", textReply("first"))
	d.Message("hello team", textReply("second"))

	got, err := d.Dispatch(context.Background(), &model.IncomingEvent{Kind: model.KindMessage, Text: "hello team"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if got.Messages[0].Text != "first" {
		t.Errorf("Dispatch() text = %q, want %q", got.Messages[0].Text, "first")
	}
}

func TestDispatchHandlerError(t *testing.T) {
	errBoom := errors.New("boom")
	d := New()
	d.Action("button_click", func(context.Context, *model.IncomingEvent) (*model.Reply, error) {
		return nil, errBoom
	})

	_, err := d.Dispatch(context.Background(), &model.IncomingEvent{Kind: model.KindAction, ActionID: "button_click"})
	if !errors.Is(err, errBoom) {
		t.Errorf("Dispatch() error = %v, want %v", err, errBoom)
	}
}

func TestDispatchNilEvent(t *testing.T) {
	if _, err := New().Dispatch(context.Background(), nil); !errors.Is(err, ErrNilEvent) {
		t.Errorf("Dispatch() error = %v, want %v", err, ErrNilEvent)
	}
}

func TestNilHandlerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Message() with nil handler did not panic")
		}
	}()
	New().Message("hello", nil)
}

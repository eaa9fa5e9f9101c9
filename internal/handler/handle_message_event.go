package handler

import (
	"encoding/json"

	"hello_slackbot/internal/model"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

// messageEvent converts a channel message into an IncomingEvent
func messageEvent(ev *slackevents.MessageEvent, body []byte) *model.IncomingEvent {
	return &model.IncomingEvent{
		Kind:            model.KindMessage,
		Type:            ev.Type,
		SubType:         ev.SubType,
		BotID:           ev.BotID,
		User:            ev.User,
		Channel:         ev.Channel,
		Text:            ev.Text,
		TimeStamp:       ev.TimeStamp,
		ThreadTimeStamp: ev.ThreadTimeStamp,
		Body:            json.RawMessage(body),
	}
}

// messageSubTypes are the message subtypes that carry newly posted text.
// Edits, deletions and channel housekeeping are not dispatched.
var messageSubTypes = map[string]bool{
	"":                         true,
	slack.MsgSubTypeBotMessage: true,
	"file_share":               true,
	"thread_broadcast":         true,
}

// ignoredEvent reports whether ev was posted by this bot, or is a message
// subtype that does not carry new text. Other bots are answered like users.
func ignoredEvent(ev *model.IncomingEvent, self botIdentity) bool {
	if self.isSelf(ev) {
		return true
	}
	return ev.Kind == model.KindMessage && !messageSubTypes[ev.SubType]
}

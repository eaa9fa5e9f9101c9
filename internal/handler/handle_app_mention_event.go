package handler

import (
	"encoding/json"

	"hello_slackbot/internal/model"

	"github.com/slack-go/slack/slackevents"
)

// appMentionEvent converts an app mention into an IncomingEvent
func appMentionEvent(ev *slackevents.AppMentionEvent, body []byte) *model.IncomingEvent {
	return &model.IncomingEvent{
		Kind:            model.KindEvent,
		Type:            string(slackevents.AppMention),
		BotID:           ev.BotID,
		User:            ev.User,
		Channel:         ev.Channel,
		Text:            ev.Text,
		TimeStamp:       ev.TimeStamp,
		ThreadTimeStamp: ev.ThreadTimeStamp,
		Body:            json.RawMessage(body),
	}
}

// callbackEvent converts an Events API callback into an IncomingEvent
func callbackEvent(eventsAPIEvent slackevents.EventsAPIEvent, body []byte) *model.IncomingEvent {
	innerEvent := eventsAPIEvent.InnerEvent
	switch event := innerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		return messageEvent(event, body)
	case *slackevents.AppMentionEvent:
		return appMentionEvent(event, body)
	default:
		return &model.IncomingEvent{
			Kind: model.KindEvent,
			Type: innerEvent.Type,
			Body: json.RawMessage(body),
		}
	}
}

package handler

import (
	"context"
	"fmt"

	"hello_slackbot/internal/dispatcher"
	"hello_slackbot/internal/logger"
	"hello_slackbot/internal/model"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

const (
	helloKeyword   = "hello"
	buttonActionID = "button_click"
	appMentionType = "app_mention"

	mentionGreeting = "Hi from Google Cloud Functions!"
)

func registerListeners(d *dispatcher.Dispatcher) {
	d.Message(helloKeyword, messageHello)
	d.Action(buttonActionID, actionButtonClick)
	d.Event(appMentionType, appMention)
}

// messageHello answers messages containing "hello" with a button
func messageHello(_ context.Context, ev *model.IncomingEvent) (*model.Reply, error) {
	text := slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf(".. <@%s>, you get a button!", ev.User), false, false)
	button := slack.NewButtonBlockElement(
		buttonActionID,
		"",
		slack.NewTextBlockObject(slack.PlainTextType, "Click Me", false, false),
	)
	section := slack.NewSectionBlock(text, nil, slack.NewAccessory(button))

	return &model.Reply{
		Messages: []model.OutgoingResponse{{
			Channel: ev.Channel,
			Text:    fmt.Sprintf(".. <@%s> you get a button!", ev.User),
			Blocks:  []slack.Block{section},
		}},
	}, nil
}

// actionButtonClick acknowledges the button and tells the channel who clicked it
func actionButtonClick(_ context.Context, ev *model.IncomingEvent) (*model.Reply, error) {
	return &model.Reply{
		Ack: true,
		Messages: []model.OutgoingResponse{{
			Channel: ev.Channel,
			Text:    fmt.Sprintf("<@%s> clicked the button", ev.User),
		}},
	}, nil
}

func appMention(_ context.Context, ev *model.IncomingEvent) (*model.Reply, error) {
	logger.GetLogger().Info("app_mention", zap.String("body", string(ev.Body)))

	return &model.Reply{
		Messages: []model.OutgoingResponse{{
			Channel: ev.Channel,
			Text:    mentionGreeting,
		}},
	}, nil
}

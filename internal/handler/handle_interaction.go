package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"hello_slackbot/internal/model"

	"github.com/slack-go/slack"
)

var errEmptyPayload = errors.New("empty interaction payload")

// interactionEvent decodes the "payload" form field of an interactivity request.
// It returns nil for interactions other than block actions.
func interactionEvent(payload string) (*model.IncomingEvent, error) {
	if payload == "" {
		return nil, errEmptyPayload
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		return nil, fmt.Errorf("failed to parse interaction payload: %w", err)
	}

	if callback.Type != slack.InteractionTypeBlockActions || len(callback.ActionCallback.BlockActions) == 0 {
		return nil, nil
	}
	action := callback.ActionCallback.BlockActions[0]

	return &model.IncomingEvent{
		Kind:     model.KindAction,
		Type:     string(callback.Type),
		User:     callback.User.ID,
		Channel:  callback.Channel.ID,
		ActionID: action.ActionID,
		Body:     json.RawMessage(payload),
	}, nil
}

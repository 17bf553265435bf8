package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionMenu     = "menu"
	actionGame     = "game"
	actionAnswer   = "ans"
	actionSettings = "settings"
)

// Menu sub-actions.
const (
	menuHome     = "home"
	menuPlay     = "play"
	menuSettings = "settings"
	menuBest     = "best"
)

// Game sub-actions.
const (
	gameStart = "start"
	gameStop  = "stop"
)

// Settings sub-actions.
const (
	settingsSound        = "sound"
	settingsHaptics      = "haptics"
	settingsClear        = "clear"
	settingsClearConfirm = "clear_confirm"
	settingsClearCancel  = "clear_cancel"
)

var errMalformedCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or an empty string.
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// answerRef identifies an answer button: the round, the question within it
// and the option index.
type answerRef struct {
	Round  int
	Number int
	Option int
}

// buildAnswerCallback builds callback data for an answer button.
func buildAnswerCallback(ref answerRef) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			strconv.Itoa(ref.Round),
			strconv.Itoa(ref.Number),
			strconv.Itoa(ref.Option),
		},
	}.encode()
}

// parseAnswerCallback extracts the answer reference from decoded callback data.
func parseAnswerCallback(cd callbackData) (answerRef, error) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 {
		return answerRef{}, errMalformedCallback
	}

	var (
		ref  answerRef
		errs [3]error
	)
	ref.Round, errs[0] = strconv.Atoi(cd.Params[0])
	ref.Number, errs[1] = strconv.Atoi(cd.Params[1])
	ref.Option, errs[2] = strconv.Atoi(cd.Params[2])
	if err := errors.Join(errs[:]...); err != nil {
		return answerRef{}, errMalformedCallback
	}
	if ref.Round < 1 || ref.Number < 1 || ref.Option < 0 {
		return answerRef{}, errMalformedCallback
	}

	return ref, nil
}

func buildMenuCallback(subAction string) string {
	return callbackData{Action: actionMenu, Params: []string{subAction}}.encode()
}

func buildGameCallback(subAction string) string {
	return callbackData{Action: actionGame, Params: []string{subAction}}.encode()
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string) string {
	return callbackData{Action: actionSettings, Params: []string{subAction}}.encode()
}

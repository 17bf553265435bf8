package game

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid round configuration")
	ErrEmptyBank            = errors.New("question bank is empty")
	ErrNoRound              = errors.New("no round has been started")
	ErrRoundOver            = errors.New("round is over")
	ErrAnswerWindowClosed   = errors.New("answer window is closed")
	ErrLoopClosed           = errors.New("event loop is closed")
)

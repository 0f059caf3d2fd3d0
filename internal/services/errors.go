package services

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Anything
// not listed here is a storage failure and surfaces as a 500.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrNoQuestion       = errors.New("room has no question yet")
	ErrEmptyText        = errors.New("question text must not be empty")
	ErrTextTooLong      = errors.New("question text exceeds the length limit")
	ErrBadParticipant   = errors.New("participant id missing or too long")
	ErrBadEnvelope      = errors.New("encrypted answer envelope is malformed")
	ErrBankEmpty        = errors.New("question bank is empty")
	ErrPromptNotFound   = errors.New("bank prompt not found")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrInvalidLogin     = errors.New("invalid credentials")
	ErrInvalidToken     = errors.New("invalid token")
)

package domain

import "errors"

var (
	// ErrInvalidArgument is returned for out-of-domain input such as negative experience or an unknown stage.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDataCorruption indicates a persisted record could not be parsed into the expected shape.
	ErrDataCorruption = errors.New("saved progress is corrupted")
	// ErrProgressNotFound is returned by progress repositories when a slot holds no record.
	ErrProgressNotFound = errors.New("progress not found")
	// ErrSessionNotFound is returned when a player has no active game session.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrSessionFinished is returned when a player acts after the last round ended.
	ErrSessionFinished = errors.New("game session already finished")
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrQuestionNotFound indicates a submitted question ID is not part of the session.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrQuestionAnswered is returned when the same question is submitted twice in one session.
	ErrQuestionAnswered = errors.New("question already answered")
)

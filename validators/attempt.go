package validators

import (
	"errors"
	"slices"

	"trackside/training-api/model"
)

var (
	ErrAttemptTypeInvalid = errors.New("attempt_type must be training or competition")
	ErrEventTypeInvalid   = errors.New("event_type must be jump, throw or run")
	ErrPlaceEmpty         = errors.New("no place provided")
	ErrResultEmpty        = errors.New("no result provided")
	ErrAttemptNumberZero  = errors.New("attempt_number must be bigger than 0")
)

func AttemptTypeValidator(t string) error {
	if !slices.Contains(model.AttemptTypes, t) {
		return ErrAttemptTypeInvalid
	}

	return nil
}

func EventTypeValidator(t string) error {
	if !slices.Contains(model.EventTypes, t) {
		return ErrEventTypeInvalid
	}

	return nil
}

package service

import (
	"errors"
	"fmt"

	"mindwell/internal/scoring"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAlreadyExists      = errors.New("already exists")
	ErrGeneration         = errors.New("narrative generation failed")
)

// ValidationError names scored questions that are missing or have no matching option
type ValidationError = scoring.ValidationError

// GenerationError wraps any failure of the generation provider
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrGeneration, e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrGeneration) true for every GenerationError
func (e *GenerationError) Is(target error) bool { return target == ErrGeneration }

func generationErr(provider string, err error) error {
	return &GenerationError{Provider: provider, Err: err}
}

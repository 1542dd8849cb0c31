package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStoryUnavailable is matched by both ErrStoryNotFound and ErrStoryForbidden.
	ErrStoryUnavailable = errors.New("story unavailable")
	ErrStoryNotFound    = fmt.Errorf("%w: story not found", ErrStoryUnavailable)
	ErrStoryForbidden   = fmt.Errorf("%w: story is not published", ErrStoryUnavailable)

	ErrStartSceneNotFound  = errors.New("story has no start scene")
	ErrSessionNotFound     = errors.New("game session not found or inactive")
	ErrInvalidChoice       = errors.New("invalid choice")
	ErrDestinationNotFound = errors.New("destination scene not found")
	ErrMissingKeywords     = errors.New("missing required keywords")
	ErrPersistenceFailure  = errors.New("failed to update game session")

	ErrInvalidItem    = errors.New("item label is empty")
	ErrItemNotOffered = errors.New("item is not offered by the current scene")
)

// MissingKeywordsError lists the required keywords absent from the journal.
// errors.Is(err, ErrMissingKeywords) holds for it.
type MissingKeywordsError struct {
	Missing []string
}

func (e *MissingKeywordsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingKeywords.Error(), strings.Join(e.Missing, ", "))
}

func (e *MissingKeywordsError) Is(target error) bool {
	return target == ErrMissingKeywords
}

// persistenceError marks err as ErrPersistenceFailure while keeping the cause.
func persistenceError(err error) error {
	if err == nil {
		return ErrPersistenceFailure
	}
	return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
}

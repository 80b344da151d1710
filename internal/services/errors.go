// Package services defines the business logic for idea generation, coding
// prompts, and the saved-ideas library. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed at
// the handler layer. All of them describe caller-correctable conditions that
// are detected before any network call is made.
package services

import "errors"

var (
	// ErrInvalidNiche is returned when the requested niche is not one of
	// the fixed categories.
	ErrInvalidNiche = errors.New("unknown niche")

	// ErrCountExceedsPlan is returned when the requested idea count is
	// outside what the user's plan allows per generation.
	ErrCountExceedsPlan = errors.New("requested count exceeds plan limit")

	// ErrQuotaExhausted is returned when the user has spent today's
	// generation quota. The quota resets at the next UTC day.
	ErrQuotaExhausted = errors.New("daily generation quota exhausted")

	// ErrCodingPromptForbidden is returned when a coding prompt is
	// requested on a plan that does not include them.
	ErrCodingPromptForbidden = errors.New("plan does not include coding prompts")

	// ErrEmptyIdea is returned when a coding prompt or save is requested
	// for an idea without a business name or description.
	ErrEmptyIdea = errors.New("idea needs a business name and description")

	// ErrIdeaNotFound indicates that the requested idea does not exist or
	// is not accessible to the current user.
	ErrIdeaNotFound = errors.New("idea not found")
)

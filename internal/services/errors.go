// Package services defines the business logic of the service-desk portal:
// authentication, the chat dispatch pipeline, FAQ management, bulk import,
// and gamification. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked
// by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

// Account and authentication errors.
var (
	// ErrEmailTaken is returned when registration reuses an existing email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not distinguish unknown email from wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound indicates that the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a JWT fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Chat errors.
var (
	// ErrEmptyMessage is returned when a chat request carries no text.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrChatLogNotFound indicates the referenced chat turn does not exist
	// or belongs to another user.
	ErrChatLogNotFound = errors.New("chat log not found")

	// ErrInvalidFeedback is returned when a feedback verdict is outside the
	// allowed set (helpful/unhelpful).
	ErrInvalidFeedback = errors.New("feedback must be helpful or unhelpful")
)

// FAQ and category errors.
var (
	// ErrFAQNotFound indicates that the requested FAQ does not exist.
	ErrFAQNotFound = errors.New("faq not found")

	// ErrCategoryNotFound is returned when a FAQ references an unknown
	// category. The category invariant is enforced before insertion.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrFileNotFound indicates the FAQ exists but carries no attachment.
	ErrFileNotFound = errors.New("faq file not found")

	// ErrUnsupportedFormat is returned by bulk import for file extensions
	// outside csv/json/xlsx/pdf.
	ErrUnsupportedFormat = errors.New("unsupported import format")
)

// Gamification errors.
var (
	// ErrChallengeNotFound indicates that the challenge does not exist.
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrChallengeInactive is returned when completing a deactivated challenge.
	ErrChallengeInactive = errors.New("challenge is inactive")

	// ErrChallengeDone is returned when a user completes the same challenge twice.
	ErrChallengeDone = errors.New("challenge already completed")

	// ErrTeamNotFound indicates that the referenced team does not exist.
	ErrTeamNotFound = errors.New("team not found")
)

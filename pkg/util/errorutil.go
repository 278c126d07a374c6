package util

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the command engine.
const (
	CodeUnknownUser            = "UNKNOWN_USER"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidPhase           = "INVALID_PHASE"
	CodeAlreadyLinked          = "ALREADY_LINKED"
	CodeNotOpen                = "NOT_OPEN"
	CodeNotMilestoneMember     = "NOT_MILESTONE_MEMBER"
	CodeMilestoneBlocked       = "MILESTONE_BLOCKED"
	CodeExpertiseMismatch      = "EXPERTISE_MISMATCH"
	CodeSeniorityMismatch      = "SENIORITY_MISMATCH"
	CodeNotAssignee            = "NOT_ASSIGNEE"
	CodeNotInProgress          = "NOT_IN_PROGRESS"
	CodeAnonymousTicket        = "ANONYMOUS_TICKET"
	CodeTooShort               = "TOO_SHORT"
	CodeClosedTicket           = "CLOSED_TICKET"
	CodeNotAuthorizedToComment = "NOT_AUTHORIZED_TO_COMMENT"
	CodeUnknownOrWrongRole     = "UNKNOWN_OR_WRONG_ROLE"
	CodeValidation             = "VALIDATION_FAILED"
	CodeInternal               = "INTERNAL_ERROR"
)

// DomainError standardizes engine errors. Message is the exact text placed
// in a result's error field.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so callers can compare against the sentinel constructors.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code && (other.Message == "" || other.Message == e.Message)
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

// Newf builds a DomainError with a formatted message.
func Newf(code, format string, args ...any) error {
	return NewDomainError(code, fmt.Sprintf(format, args...), nil)
}

func NewUnknownUser(username string) error {
	return NewDomainError(CodeUnknownUser, fmt.Sprintf("The user %s does not exist.", username),
		map[string]any{"username": username})
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, nil)
}

func NewNotFound(message string, details map[string]any) error {
	return NewDomainError(CodeNotFound, message, details)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidation, message, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

// CodeOf returns the code of a DomainError, or CodeInternal for anything else.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return ToDomainError(err).Code
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:    CodeInternal,
		Message: "internal error",
		Err:     err,
	}
}

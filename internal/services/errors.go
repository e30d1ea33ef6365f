package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUpstream      = errors.New("upstream failure")
	ErrEmptyInput    = errors.New("empty input")
	ErrContract      = errors.New("collaborator contract violation")
	ErrTimeout       = errors.New("timeout")
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Failure kinds reported by Classify.
type Failure string

const (
	FailureNone          Failure = ""
	FailureUpstream      Failure = "upstream"
	FailureEmptyInput    Failure = "empty_input"
	FailureContract      Failure = "contract"
	FailureTimeout       Failure = "timeout"
	FailureExternalTool  Failure = "external_tool"
	FailureValidation    Failure = "validation"
	FailureConfiguration Failure = "configuration"
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to the failure kind the review gate records.
// Deadline errors count as timeouts even when they were not wrapped.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	case errors.Is(err, ErrContract):
		return FailureContract
	case errors.Is(err, ErrEmptyInput):
		return FailureEmptyInput
	case errors.Is(err, ErrUpstream):
		return FailureUpstream
	case errors.Is(err, ErrValidation):
		return FailureValidation
	case errors.Is(err, ErrConfiguration):
		return FailureConfiguration
	default:
		return FailureExternalTool
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

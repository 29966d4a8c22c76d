package blackjack

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrAborted is returned when the choice source can no longer supply
	// answers, for example on end of input.
	ErrAborted = errors.New("session aborted")

	// ErrInvalidInput is wrapped by validators when an answer is rejected
	ErrInvalidInput = errors.New("invalid input")
)

// Prompter supplies free-text answers to questions. Implementations only
// relay text; all validation happens in the engine.
type Prompter interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// Validator converts an answer into a value or rejects it with an error
type Validator[T any] func(answer string) (T, error)

// Collect prompts until validate accepts an answer. onInvalid, if not nil,
// is called with every rejected answer before prompting again.
func Collect[T any](ctx context.Context, p Prompter, message string, validate Validator[T], onInvalid func(answer string, err error)) (T, error) {
	for {
		answer, err := p.Prompt(ctx, message)
		if err != nil {
			var zero T
			return zero, err
		}

		value, err := validate(answer)
		if err == nil {
			return value, nil
		}
		if onInvalid != nil {
			onInvalid(answer, err)
		}
	}
}

// IntInRange accepts decimal integers between lo and hi inclusive
func IntInRange(lo, hi int) Validator[int] {
	return func(answer string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, answer)
		}
		if n < lo || n > hi {
			return 0, fmt.Errorf("%w: %d is not between %d and %d", ErrInvalidInput, n, lo, hi)
		}
		return n, nil
	}
}

// LengthBetween accepts answers whose character count is between lo and hi
// inclusive, returning the answer unchanged
func LengthBetween(lo, hi int) Validator[string] {
	return func(answer string) (string, error) {
		n := utf8.RuneCountInString(answer)
		if n < lo || n > hi {
			return "", fmt.Errorf("%w: must be %d-%d characters, got %d", ErrInvalidInput, lo, hi, n)
		}
		return answer, nil
	}
}

// LooseRoundCount only checks that the answer is 1 to maxLen characters
// long. Text that does not read as a positive integer is accepted and
// yields zero rounds.
func LooseRoundCount(maxLen int) Validator[int] {
	checkLength := LengthBetween(1, maxLen)
	return func(answer string) (int, error) {
		if _, err := checkLength(answer); err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || n < 0 {
			return 0, nil
		}
		return n, nil
	}
}

// StrictRoundCount accepts positive integers up to maxLen characters long
func StrictRoundCount(maxLen int) Validator[int] {
	loose := LooseRoundCount(maxLen)
	return func(answer string) (int, error) {
		n, err := loose(answer)
		if err != nil {
			return 0, err
		}
		if n < 1 {
			return 0, fmt.Errorf("%w: %q is not a positive number of rounds", ErrInvalidInput, answer)
		}
		return n, nil
	}
}

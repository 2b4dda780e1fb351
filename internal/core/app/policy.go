package app

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrorPolicy decides what happens to a failed operation's error.
type ErrorPolicy int

const (
	// PolicyAbsorb records the message in state and does not return the error.
	// Used by list fetches.
	PolicyAbsorb ErrorPolicy = iota
	// PolicyPropagate records the message in state and returns the error.
	// Used by detail fetches and login.
	PolicyPropagate
	// PolicyLog only logs the error. Used by the category listing.
	PolicyLog
)

// messenger is implemented by errors that carry a message meant for display.
type messenger interface {
	UserMessage() string
}

// Message returns the display text for err, or fallback when err has none.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var m messenger
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return fallback
}

// settle applies the policy. record may be nil for PolicyLog.
func (p ErrorPolicy) settle(logger zerolog.Logger, op string, err error, record *string) error {
	switch p {
	case PolicyAbsorb:
		*record = Message(err, op+" failed")
		logger.Debug().Err(err).Str("op", op).Msg("error recorded in state")

		return nil
	case PolicyPropagate:
		*record = Message(err, op+" failed")

		return err
	default:
		logger.Warn().Err(err).Str("op", op).Msg("operation failed")

		return nil
	}
}

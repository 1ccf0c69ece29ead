package catan

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an action was rejected.
type ErrorKind string

const (
	KindTurn      ErrorKind = "turn"
	KindPhase     ErrorKind = "phase"
	KindResources ErrorKind = "resources"
	KindPlacement ErrorKind = "placement"
	KindInventory ErrorKind = "inventory"
	KindNotFound  ErrorKind = "not-found"
	KindRule      ErrorKind = "rule"
)

// ActionError describes a rejected action. The state is never modified when
// an action returns an ActionError.
type ActionError struct {
	Kind    ErrorKind
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

func errorf(kind ErrorKind, format string, args ...any) *ActionError {
	return &ActionError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinel errors for the lifecycle operations.
var (
	ErrGameFull         = &ActionError{KindRule, "game is full"}
	ErrAlreadyStarted   = &ActionError{KindPhase, "game already started"}
	ErrNotEnoughPlayers = &ActionError{KindRule, "need at least 2 players"}
	ErrNotYourTurn      = &ActionError{KindTurn, "not your turn"}
	ErrGameOver         = &ActionError{KindPhase, "game is finished"}
)

// IsKind reports whether err is an ActionError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *ActionError
	return errors.As(err, &ae) && ae.Kind == kind
}

// KindOf returns the kind of an ActionError, or "" for other errors.
func KindOf(err error) ErrorKind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

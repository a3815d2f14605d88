package auth

import (
	"crypto/subtle"
	"errors"
)

// ErrWrongSecret is returned when a confirmation attempt does not match the shared secret.
var ErrWrongSecret = errors.New("senha incorreta")

// Gated actions, used as metric labels and in logs.
const (
	ActionCreatePerson      = "create_person"
	ActionDeletePerson      = "delete_person"
	ActionDeleteObservation = "delete_observation"
	ActionUnlockReport      = "unlock_report"
)

// Authorizer decides whether a confirmation attempt unlocks a gated action.
// This abstraction lets the editor, the services and the tests share one check
// without repeating the secret.
type Authorizer interface {
	// Authorize reports whether attempt is accepted.
	Authorize(attempt string) bool
}

// teamSecret is the team's shared passphrase. It is not configurable.
const teamSecret = "SAGA"

// SharedSecret accepts exactly the team passphrase, compared verbatim.
type SharedSecret struct{}

// Ensure SharedSecret implements Authorizer
var _ Authorizer = SharedSecret{}

// Authorize compares attempt with the passphrase byte for byte.
func (SharedSecret) Authorize(attempt string) bool {
	return subtle.ConstantTimeCompare([]byte(attempt), []byte(teamSecret)) == 1
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(attempt string) bool

// Authorize calls f(attempt).
func (f AuthorizerFunc) Authorize(attempt string) bool {
	return f(attempt)
}

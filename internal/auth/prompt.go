package auth

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/mmynk/mentorboard/internal/metrics"
)

// ErrPromptClosed is returned by Submit when no action is waiting for confirmation.
var ErrPromptClosed = errors.New("no action awaiting confirmation")

// Prompt holds one action until the shared secret is entered.
//
// A wrong attempt keeps the prompt open and records an inline error; there is no
// retry limit. A correct attempt runs the action once and closes the prompt.
type Prompt struct {
	authz Authorizer
	name  string

	mu      sync.Mutex
	pending func() error
	err     error
}

// NewPrompt creates a closed prompt for the named action.
func NewPrompt(authz Authorizer, name string) *Prompt {
	return &Prompt{authz: authz, name: name}
}

// Open replaces any pending action with action and clears the inline error.
func (p *Prompt) Open(action func() error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = action
	p.err = nil
}

// Submit checks attempt. On a match the pending action runs and its error is returned.
func (p *Prompt) Submit(attempt string) error {
	p.mu.Lock()
	action := p.pending
	if action == nil {
		p.mu.Unlock()
		return ErrPromptClosed
	}

	ok := p.authz.Authorize(attempt)
	metrics.GateAttempts.WithLabelValues(p.name, metrics.GateResult(ok)).Inc()
	if !ok {
		p.err = ErrWrongSecret
		p.mu.Unlock()
		slog.Debug("Gate denied", "action", p.name)
		return ErrWrongSecret
	}
	p.pending = nil
	p.err = nil
	p.mu.Unlock()

	return action()
}

// Cancel drops the pending action without running it.
func (p *Prompt) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
	p.err = nil
}

// IsOpen reports whether an action is awaiting confirmation.
func (p *Prompt) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

// Err returns the inline error of the last failed attempt.
func (p *Prompt) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Guard runs action only if attempt is authorized. It is the one-shot form of Prompt.
func Guard(authz Authorizer, name, attempt string, action func() error) error {
	ok := authz.Authorize(attempt)
	metrics.GateAttempts.WithLabelValues(name, metrics.GateResult(ok)).Inc()
	if !ok {
		return ErrWrongSecret
	}
	return action()
}

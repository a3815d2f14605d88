package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSharedSecret(t *testing.T) {
	tests := []struct {
		attempt string
		want    bool
	}{
		{"SAGA", true},
		{"saga", false},
		{"SAGA ", false},
		{"", false},
		{"SAG", false},
	}
	for _, tt := range tests {
		t.Run(tt.attempt, func(t *testing.T) {
			if got := (SharedSecret{}).Authorize(tt.attempt); got != tt.want {
				t.Errorf("Authorize(%q) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestPromptWrongSecretKeepsPromptOpen(t *testing.T) {
	p := NewPrompt(SharedSecret{}, ActionDeletePerson)
	calls := 0
	p.Open(func() error { calls++; return nil })

	for i := 0; i < 5; i++ {
		if err := p.Submit("wrong"); !errors.Is(err, ErrWrongSecret) {
			t.Fatalf("attempt %d: expected ErrWrongSecret, got %v", i, err)
		}
	}
	if calls != 0 {
		t.Errorf("action ran %d times on wrong secret", calls)
	}
	if !p.IsOpen() {
		t.Error("prompt should stay open after a wrong secret")
	}
	if !errors.Is(p.Err(), ErrWrongSecret) {
		t.Errorf("expected inline error, got %v", p.Err())
	}

	if err := p.Submit("SAGA"); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected action to run once, ran %d times", calls)
	}
	if p.IsOpen() {
		t.Error("prompt should close after a correct secret")
	}
	if p.Err() != nil {
		t.Errorf("inline error should clear, got %v", p.Err())
	}

	if err := p.Submit("SAGA"); !errors.Is(err, ErrPromptClosed) {
		t.Errorf("expected ErrPromptClosed on a closed prompt, got %v", err)
	}
	if calls != 1 {
		t.Errorf("action must not run again, ran %d times", calls)
	}
}

func TestPromptCancel(t *testing.T) {
	p := NewPrompt(SharedSecret{}, ActionDeleteObservation)
	ran := false
	p.Open(func() error { ran = true; return nil })
	_ = p.Submit("nope")
	p.Cancel()

	if p.IsOpen() || p.Err() != nil {
		t.Error("cancel should close the prompt and clear the error")
	}
	if ran {
		t.Error("cancel must not run the action")
	}
}

func TestPromptReturnsActionError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPrompt(SharedSecret{}, ActionDeletePerson)
	p.Open(func() error { return boom })
	if err := p.Submit("SAGA"); !errors.Is(err, boom) {
		t.Errorf("expected action error, got %v", err)
	}
}

func TestGuard(t *testing.T) {
	calls := 0
	action := func() error { calls++; return nil }

	if err := Guard(SharedSecret{}, ActionCreatePerson, "x", action); !errors.Is(err, ErrWrongSecret) {
		t.Errorf("expected ErrWrongSecret, got %v", err)
	}
	if err := Guard(SharedSecret{}, ActionCreatePerson, "SAGA", action); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected one call, got %d", calls)
	}

	allowAll := AuthorizerFunc(func(string) bool { return true })
	if err := Guard(allowAll, ActionCreatePerson, "", action); err != nil {
		t.Errorf("custom authorizer rejected: %v", err)
	}
}

func TestReportTokenManager(t *testing.T) {
	m, err := NewReportTokenManager("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewReportTokenManager failed: %v", err)
	}

	token, expires, err := m.Generate(42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expiry should be in the future: %v", expires)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.PersonID != 42 {
		t.Errorf("expected person 42, got %d", claims.PersonID)
	}

	t.Run("tampered", func(t *testing.T) {
		if _, err := m.Validate(token + "x"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other, _ := NewReportTokenManager("", time.Minute)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		defer func() { m.now = time.Now }()
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

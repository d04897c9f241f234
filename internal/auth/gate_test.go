package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	gate, err := NewGate("test-secret")
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}

	token, err := gate.IssueToken()
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if !gate.Verify(token) {
		t.Fatal("expected freshly issued token to verify")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	gate, err := NewGate("test-secret")
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if gate.Verify(token) {
			t.Fatalf("expected %q to be rejected", token)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewGate("secret-one")
	verifier, _ := NewGate("secret-two")

	token, err := issuer.IssueToken()
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if verifier.Verify(token) {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	issuer, _ := NewGate("test-secret", WithClock(func() time.Time { return issued }))
	token, err := issuer.IssueToken()
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	later := issued.Add(TokenValidity + time.Hour)
	verifier, _ := NewGate("test-secret", WithClock(func() time.Time { return later }))
	if verifier.Verify(token) {
		t.Fatal("expected expired token to be rejected")
	}

	within := issued.Add(TokenValidity - time.Hour)
	verifier, _ = NewGate("test-secret", WithClock(func() time.Time { return within }))
	if !verifier.Verify(token) {
		t.Fatal("expected unexpired token to verify")
	}
}

func TestNewGateRequiresSecret(t *testing.T) {
	if _, err := NewGate(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestSecretDigest(t *testing.T) {
	hash := HashSecret("hunter2")
	if len(hash) != 64 {
		t.Fatalf("expected hex sha256 digest, got %q", hash)
	}
	if !VerifySecret("hunter2", hash) {
		t.Fatal("expected matching secret to verify")
	}
	if VerifySecret("hunter3", hash) {
		t.Fatal("expected mismatched secret to fail")
	}
}

func TestSessionCookie(t *testing.T) {
	cookie := SessionCookie("tok")
	if cookie.Name != CookieName || cookie.Value != "tok" {
		t.Fatalf("unexpected cookie: %#v", cookie)
	}
	if !cookie.HttpOnly || !cookie.Secure {
		t.Fatal("session cookie must be http-only and secure")
	}
	if cookie.MaxAge != int(TokenValidity.Seconds()) {
		t.Fatalf("cookie lifetime %d does not mirror token validity", cookie.MaxAge)
	}
}

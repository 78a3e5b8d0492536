package auth

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secr3tPass")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "Secr3tPass" || !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("unexpected hash %q", hash)
	}

	if !h.Verify("Secr3tPass", hash) {
		t.Fatal("expected match")
	}
	if h.Verify("secr3tpass", hash) {
		t.Fatal("expected mismatch for different case")
	}
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	a, _ := h.Hash("Secr3tPass")
	b, _ := h.Hash("Secr3tPass")
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestPasswordHasher_Limits(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	if _, err := h.Hash(""); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("empty: got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", 73)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("too long: got %v", err)
	}
	if _, err := h.Hash(strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72 bytes must be accepted: %v", err)
	}
}

func TestPasswordHasher_VerifyNeverPanics(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	for _, hash := range []string{"", "plain", "$2a$04$short"} {
		if h.Verify("x", hash) {
			t.Fatalf("malformed hash %q must not match", hash)
		}
	}
	if h.Verify("", "$2a$04$abcdefghijklmnopqrstuu") {
		t.Fatal("empty password must not match")
	}
	h.Burn("anything")
}

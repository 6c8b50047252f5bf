package crypto

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Abcdef12", DefaultCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty string")
	}
	if hash == "Abcdef12" {
		t.Fatal("HashPassword() returned the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("HashPassword() = %q, want bcrypt format", hash)
	}
}

func TestHashPasswordCostFloor(t *testing.T) {
	// A cost below the default must be raised, never honored.
	hash, err := HashPassword("Abcdef12", 4)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if !strings.Contains(hash, "$12$") {
		t.Errorf("HashPassword() with cost 4 = %q, want cost 12 in hash", hash)
	}
}

func TestVerifyPasswordMatch(t *testing.T) {
	hash, err := HashPassword("Abcdef12", DefaultCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword("Abcdef12", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if !match {
		t.Error("VerifyPassword() = false for correct password")
	}
}

func TestVerifyPasswordMismatch(t *testing.T) {
	hash, err := HashPassword("Abcdef12", DefaultCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	match, err := VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() unexpected error: %v", err)
	}
	if match {
		t.Error("VerifyPassword() = true for wrong password")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("Abcdef12", "not-a-bcrypt-hash")
	if err == nil {
		t.Error("VerifyPassword() expected error for malformed hash")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	h1, err := HashPassword("Abcdef12", DefaultCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	h2, err := HashPassword("Abcdef12", DefaultCost)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (random salt)")
	}
}

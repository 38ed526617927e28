package utils

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("HashPassword() returned error: %v", err)
	}
	if hash == "super-secret" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPassword("super-secret", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPasswordProducesDistinctHashes(t *testing.T) {
	first, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("HashPassword() returned error: %v", err)
	}
	second, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("HashPassword() returned error: %v", err)
	}
	if first == second {
		t.Error("bcrypt hashes must be salted")
	}
}

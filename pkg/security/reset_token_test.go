package security

import "testing"

func TestNewResetToken(t *testing.T) {
	plaintext, hash, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() returned error: %v", err)
	}

	// 32 random bytes, hex encoded
	if len(plaintext) != 64 {
		t.Errorf("plaintext length = %d, want 64", len(plaintext))
	}

	if hash == plaintext {
		t.Error("hash equals plaintext")
	}

	if HashResetToken(plaintext) != hash {
		t.Error("HashResetToken(plaintext) does not match the returned hash")
	}
}

func TestNewResetTokenUnique(t *testing.T) {
	seen := make(map[string]struct{})

	for range 100 {
		plaintext, _, err := NewResetToken()
		if err != nil {
			t.Fatalf("NewResetToken() returned error: %v", err)
		}

		if _, dup := seen[plaintext]; dup {
			t.Fatal("NewResetToken() produced a duplicate value")
		}
		seen[plaintext] = struct{}{}
	}
}

func TestHashResetTokenDeterministic(t *testing.T) {
	if HashResetToken("abc") != HashResetToken("abc") {
		t.Error("same input should hash to the same digest")
	}

	if HashResetToken("abc") == HashResetToken("abd") {
		t.Error("different inputs should not collide")
	}
}

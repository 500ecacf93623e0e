package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash must not equal the plain password")
	}
	if !Verify("password123", hash) {
		t.Fatal("expected password to verify against its hash")
	}
	if Verify("' OR '1'='1' --", hash) {
		t.Fatal("expected wrong password to be rejected")
	}
}

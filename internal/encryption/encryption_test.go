package encryption

import (
	"bytes"
	"errors"
	"testing"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := testKey()

	sealed, err := Seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if bytes.Contains(sealed, []byte("secret")) {
		t.Fatal("sealed output contains plaintext")
	}

	plaintext, err := Open(key, sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if string(plaintext) != "secret" {
		t.Fatalf("got %q", plaintext)
	}
}

func TestOpenRejectsTampering(t *testing.T) {
	key := testKey()
	sealed, err := Seal(key, []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff
	if _, err := Open(key, sealed); err == nil {
		t.Fatal("expected authentication failure")
	}
}

func TestOpenRejectsWrongKey(t *testing.T) {
	sealed, err := Seal(testKey(), []byte("secret"))
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	other := testKey()
	other[0] ^= 0xff
	if _, err := Open(other, sealed); err == nil {
		t.Fatal("expected decrypt failure with wrong key")
	}
}

func TestKeySizeEnforced(t *testing.T) {
	if _, err := Seal(make([]byte, 16), []byte("x")); !errors.Is(err, ErrKeySize) {
		t.Fatalf("expected ErrKeySize, got %v", err)
	}
	if _, err := Open(make([]byte, 16), []byte("x")); !errors.Is(err, ErrKeySize) {
		t.Fatalf("expected ErrKeySize, got %v", err)
	}
}

func TestOpenShortCiphertext(t *testing.T) {
	if _, err := Open(testKey(), []byte{0x01}); !errors.Is(err, ErrCiphertext) {
		t.Fatalf("expected ErrCiphertext, got %v", err)
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	key := testKey()
	sealed, err := SealCredentials(key, Credentials{Username: "demo@example.com", Password: "hunter2"})
	if err != nil {
		t.Fatalf("seal credentials: %v", err)
	}
	creds, err := OpenCredentials(key, sealed)
	if err != nil {
		t.Fatalf("open credentials: %v", err)
	}
	if creds.Username != "demo@example.com" || creds.Password != "hunter2" {
		t.Fatalf("round trip mismatch: %+v", creds)
	}
}

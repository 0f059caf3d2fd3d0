package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
	}{
		{"ascii", "late night pancakes at the diner on 5th"},
		{"unicode", "наш первый концерт ❤️ у моря"},
		{"empty", ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			env, err := Encrypt([]byte(tc.text), "horse-battery-staple")
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			got, err := Decrypt(env.Ciphertext, env.IV, env.Salt, "horse-battery-staple")
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if string(got) != tc.text {
				t.Fatalf("round trip: got %q, want %q", got, tc.text)
			}
		})
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	t.Parallel()

	env, err := Encrypt([]byte("the answer"), "correct")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := Decrypt(env.Ciphertext, env.IV, env.Salt, "almost-correct"); !errors.Is(err, ErrPassphraseMismatch) {
		t.Fatalf("got %v, want ErrPassphraseMismatch", err)
	}
}

func TestDecryptTamperedRecord(t *testing.T) {
	t.Parallel()

	env, err := Encrypt([]byte("the answer"), "pass")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	env.Ciphertext[0] ^= 0xff
	if _, err := Decrypt(env.Ciphertext, env.IV, env.Salt, "pass"); !errors.Is(err, ErrPassphraseMismatch) {
		t.Fatalf("got %v, want ErrPassphraseMismatch", err)
	}
}

func TestEncryptMintsFreshMaterial(t *testing.T) {
	t.Parallel()

	a, err := Encrypt([]byte("same plaintext"), "pass")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := Encrypt([]byte("same plaintext"), "pass")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Equal(a.IV, b.IV) {
		t.Fatal("two encryptions shared an IV")
	}
	if bytes.Equal(a.Salt, b.Salt) {
		t.Fatal("two encryptions shared a salt")
	}
	if bytes.Equal(a.Ciphertext, b.Ciphertext) {
		t.Fatal("two encryptions of the same plaintext produced identical ciphertext")
	}
}

func TestEncryptLengthBound(t *testing.T) {
	t.Parallel()

	// Multibyte runes make sure the bound counts code points, not bytes.
	ok := strings.Repeat("ü", MaxPlaintextRunes)
	if _, err := Encrypt([]byte(ok), "pass"); err != nil {
		t.Fatalf("plaintext at the bound rejected: %v", err)
	}
	over := strings.Repeat("ü", MaxPlaintextRunes+1)
	if _, err := Encrypt([]byte(over), "pass"); !errors.Is(err, ErrPlaintextTooLong) {
		t.Fatalf("got %v, want ErrPlaintextTooLong", err)
	}
}

func TestDeriveKeyStableForSalt(t *testing.T) {
	t.Parallel()

	k1, salt, err := DeriveKey("pass", nil)
	if err != nil {
		t.Fatalf("DeriveKey: %v", err)
	}
	k2, _, err := DeriveKey("pass", salt)
	if err != nil {
		t.Fatalf("DeriveKey with salt: %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Fatal("same passphrase and salt derived different keys")
	}
	k3, _, err := DeriveKey("other", salt)
	if err != nil {
		t.Fatalf("DeriveKey other: %v", err)
	}
	if bytes.Equal(k1, k3) {
		t.Fatal("different passphrases derived the same key")
	}
}

func TestEmptyPassphraseRejected(t *testing.T) {
	t.Parallel()

	if _, err := Encrypt([]byte("x"), ""); !errors.Is(err, ErrEmptyPassphrase) {
		t.Fatalf("got %v, want ErrEmptyPassphrase", err)
	}
}

// Package crypto derives keys from the shared passphrase and seals
// answers with an AEAD. It runs on the participant's device only; the
// server stores the resulting envelope as opaque bytes.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MaxPlaintextRunes bounds answer length in Unicode code points.
	MaxPlaintextRunes = 2000

	keyLen     = 32
	saltLen    = 16
	iterations = 150000
)

var (
	ErrEmptyPassphrase  = errors.New("crypto: passphrase must not be empty")
	ErrPlaintextTooLong = errors.New("crypto: plaintext exceeds supported length")

	// ErrPassphraseMismatch covers both a wrong passphrase and a
	// tampered record; AEAD authentication cannot tell them apart.
	ErrPassphraseMismatch = errors.New("crypto: passphrase mismatch or corrupted record")
)

// Envelope is one sealed answer as it travels to and from the server.
type Envelope struct {
	Ciphertext []byte
	IV         []byte
	Salt       []byte
}

// DeriveKey stretches the passphrase into an AES-256 key. A nil or
// empty salt means "mint a fresh one"; decryption passes the stored
// salt back in. The iteration count is deliberately high so offline
// guessing against a leaked envelope stays expensive.
func DeriveKey(passphrase string, salt []byte) ([]byte, []byte, error) {
	if passphrase == "" {
		return nil, nil, ErrEmptyPassphrase
	}
	if len(salt) == 0 {
		salt = make([]byte, saltLen)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, nil, err
		}
	}
	key := pbkdf2.Key([]byte(passphrase), salt, iterations, keyLen, sha256.New)
	return key, salt, nil
}

// Encrypt seals plaintext under a key derived from the passphrase with
// a fresh salt and a fresh nonce. Calling it twice with identical
// inputs yields different envelopes.
func Encrypt(plaintext []byte, passphrase string) (*Envelope, error) {
	if utf8.RuneCount(plaintext) > MaxPlaintextRunes {
		return nil, ErrPlaintextTooLong
	}
	key, salt, err := DeriveKey(passphrase, nil)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	iv := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}
	return &Envelope{
		Ciphertext: gcm.Seal(nil, iv, plaintext, nil),
		IV:         iv,
		Salt:       salt,
	}, nil
}

// Decrypt opens a stored envelope with the supplied passphrase. Any
// authentication failure comes back as ErrPassphraseMismatch.
func Decrypt(ciphertext, iv, salt []byte, passphrase string) ([]byte, error) {
	key, _, err := DeriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != gcm.NonceSize() {
		return nil, ErrPassphraseMismatch
	}
	plaintext, err := gcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, ErrPassphraseMismatch
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

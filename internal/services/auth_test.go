package services

import (
	"errors"
	"testing"
)

func TestRegisterLoginValidate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("curator1", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	id, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if id == 0 {
		t.Fatalf("token carries no curator id")
	}

	if _, err := svc.Register("curator1", "other-password"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	loginToken, err := svc.Login("curator1", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	loginID, err := svc.ValidateToken(loginToken)
	if err != nil {
		t.Fatalf("ValidateToken(login): %v", err)
	}
	if loginID != id {
		t.Fatalf("login resolved curator %d, registration gave %d", loginID, id)
	}

	if _, err := svc.Login("curator1", "wrong"); !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("wrong password: expected ErrInvalidLogin, got %v", err)
	}
	if _, err := svc.Login("ghost", "password123"); !errors.Is(err, ErrInvalidLogin) {
		t.Fatalf("unknown user: expected ErrInvalidLogin, got %v", err)
	}
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	for _, token := range []string{"", "not-a-jwt", "aa.bb.cc"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("ValidateToken(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}

	// A token signed under a different secret must not validate.
	other := NewAuthService(db, "other-secret")
	forged, err := other.GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ValidateToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for a foreign signature, got %v", err)
	}
}

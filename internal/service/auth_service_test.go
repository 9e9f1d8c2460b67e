package service

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret")

	registered, err := svc.Register(context.Background(), "owner@example.com", "Owner", "hunter22")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if registered.Token == "" || registered.OwnerID == "" {
		t.Fatalf("expected token and owner id, got %+v", registered)
	}

	logged, err := svc.Login(context.Background(), "owner@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if logged.OwnerID != registered.OwnerID {
		t.Fatalf("expected owner id %s, got %s", registered.OwnerID, logged.OwnerID)
	}

	claims, err := svc.ValidateOwnerToken(logged.Token)
	if err != nil {
		t.Fatalf("ValidateOwnerToken error: %v", err)
	}
	if claims.OwnerID != registered.OwnerID || claims.Email != "owner@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret")
	if _, err := svc.Register(context.Background(), "owner@example.com", "Owner", "hunter22"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := svc.Login(context.Background(), "owner@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret")
	if _, err := svc.Register(context.Background(), "owner@example.com", "Owner", "hunter22"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := svc.Register(context.Background(), "owner@example.com", "Clone", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestValidateOwnerTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "test-secret")
	if _, err := svc.ValidateOwnerToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// Token signed with a different secret must not validate.
	other := NewAuthService(newStubUserRepo(), "other-secret")
	resp, err := other.Register(context.Background(), "owner@example.com", "Owner", "hunter22")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := svc.ValidateOwnerToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for cross-secret token, got %v", err)
	}
}

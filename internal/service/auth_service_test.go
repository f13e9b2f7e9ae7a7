package service

import (
	"errors"
	"testing"

	drainguard "github.com/krishkishore714-max/Drainage-congestion"
)

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*drainguard.User, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockAuthRepo) Create(username, hash string) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(username string) (*drainguard.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

// --- SignUp tests ---

func TestAuthService_SignUp_SuccessHashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			return 42, nil
		},
	}
	svc := NewAuthService(mock)

	id, err := svc.SignUp("alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	// Ensure Create called exactly once with hashed password (not equal to raw) and valid bcrypt.
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.username != "alice" {
		t.Errorf("expected username 'alice', got %q", call.username)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	mock := &mockAuthRepo{
		CreateFn: func(username, hash string) (int, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := NewAuthService(mock)

	_, err := svc.SignUp("bob", "   ")
	if err == nil {
		t.Fatalf("expected error for empty password, got nil")
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

// --- GenerateToken / ParseToken tests ---

func TestAuthService_TokenRoundtrip(t *testing.T) {
	hash, err := hashPassword("pass123")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*drainguard.User, error) {
			return &drainguard.User{ID: 7, Username: username, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(mock)

	token, err := svc.GenerateToken("carol", "pass123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	id, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected user id 7, got %d", id)
	}
}

func TestAuthService_GenerateToken_WrongPassword(t *testing.T) {
	hash, err := hashPassword("pass123")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*drainguard.User, error) {
			return &drainguard.User{ID: 7, Username: username, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(mock)

	if _, err := svc.GenerateToken("carol", "nope"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_GenerateToken_UnknownUser(t *testing.T) {
	mock := &mockAuthRepo{
		GetByUsernameFn: func(username string) (*drainguard.User, error) {
			return nil, nil
		},
	}
	svc := NewAuthService(mock)

	if _, err := svc.GenerateToken("ghost", "pass123"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{})
	if _, err := svc.ParseToken("not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

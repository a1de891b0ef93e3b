package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"robocamp/internal/config"
	"robocamp/internal/domain/user"

	"github.com/google/uuid"
)

// fakeUserRepo is an in-memory user.Repository
type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset int) ([]*user.User, error) {
	var out []*user.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func newTestAuthService(repo *fakeUserRepo) *AuthService {
	svc := NewAuthService(repo, config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTLHours: 24,
		BcryptCost:    4, // min cost keeps the tests fast
	})
	svc.now = func() time.Time { return testNow }
	return svc
}

func signupRequest() *user.SignupRequest {
	return &user.SignupRequest{
		Email:     "parent@example.com",
		Password:  "correct-horse",
		FirstName: "Linh",
		LastName:  "Nguyen",
	}
}

func TestSignupAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	created, token, err := svc.Signup(context.Background(), signupRequest())
	if err != nil {
		t.Fatalf("Signup failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a token from signup")
	}
	if created.Role != user.RoleParent {
		t.Errorf("Expected new accounts to get the parent role, got %s", created.Role)
	}
	if created.PasswordHash == "correct-horse" {
		t.Error("Expected password to be hashed")
	}

	loggedIn, token, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "parent@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != created.ID {
		t.Errorf("Expected login to return the signed-up user")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != created.ID {
		t.Errorf("Expected token subject %s, got %s", created.ID, claims.UserID)
	}
	if claims.Role != string(user.RoleParent) {
		t.Errorf("Expected role claim parent, got %s", claims.Role)
	}
}

func TestSignup_EmailTaken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Signup(context.Background(), signupRequest()); err != nil {
		t.Fatalf("First signup failed: %v", err)
	}

	_, _, err := svc.Signup(context.Background(), signupRequest())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	if _, _, err := svc.Signup(context.Background(), signupRequest()); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "parent@example.com",
		Password: "wrong-password",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	if _, _, err := svc.Login(context.Background(), &user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken for garbage, got %v", err)
	}

	// Token signed with a different secret must be rejected
	other := NewAuthService(repo, config.AuthConfig{JWTSecret: "other-secret", TokenTTLHours: 24})
	u := &user.User{ID: uuid.New(), Role: user.RoleParent}
	foreign, err := other.IssueToken(u)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if _, err := svc.ParseToken(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken for wrong signature, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)

	issuer := newTestAuthService(repo)
	issuer.now = func() time.Time { return testNow.Add(-48 * time.Hour) }

	u := &user.User{ID: uuid.New(), Role: user.RoleParent}
	expired, err := issuer.IssueToken(u)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	if _, err := svc.ParseToken(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

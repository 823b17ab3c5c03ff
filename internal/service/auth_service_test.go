package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"mindwell/internal/logger"
	"mindwell/internal/model"
)

func newAuthHarness(t *testing.T) (*AuthService, *stubUserRepo, *stubSessionCache) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("counsel-me"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	users := newStubUserRepo(
		&model.User{ID: "1", RegistrationNumber: "220014748", Email: "student@university.edu", FullName: "John Doe", Role: model.RoleStudent},
		&model.User{ID: "2", Email: "admin@university.edu", FullName: "Admin User", Role: model.RoleAdmin, PasswordHash: string(hash)},
	)
	sessions := &stubSessionCache{}
	return NewAuthService(users, sessions, "test-secret", time.Hour, logger.Nop()), users, sessions
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthHarness(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		req    model.LoginRequest
		wantID string
		err    error
	}{
		{"student", model.LoginRequest{RegistrationNumber: "220014748"}, "1", nil},
		{"bad format", model.LoginRequest{RegistrationNumber: "120014748"}, "", ErrInvalidCredentials},
		{"unknown student", model.LoginRequest{RegistrationNumber: "299999999"}, "", ErrInvalidCredentials},
		{"staff", model.LoginRequest{Email: " Admin@University.edu ", Password: "counsel-me"}, "2", nil},
		{"wrong password", model.LoginRequest{Email: "admin@university.edu", Password: "nope"}, "", ErrInvalidCredentials},
		{"student by email has no password", model.LoginRequest{Email: "student@university.edu", Password: ""}, "", ErrInvalidCredentials},
		{"empty", model.LoginRequest{}, "", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, &tt.req)
			if !errors.Is(err, tt.err) {
				t.Fatalf("err = %v, want %v", err, tt.err)
			}
			if tt.err != nil {
				return
			}
			if resp.User.ID != tt.wantID || resp.Token == "" {
				t.Fatalf("resp = %+v", resp)
			}
			claims, err := svc.Authenticate(ctx, resp.Token)
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if claims.UserID != tt.wantID || claims.Role != resp.User.Role || claims.ID == "" {
				t.Fatalf("claims = %+v", claims)
			}
		})
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, sessions := newAuthHarness(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.LoginRequest{RegistrationNumber: "220014748"})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := svc.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatal(err)
	}
	if ttl := sessions.revoked[claims.ID]; ttl <= 0 || ttl > time.Hour {
		t.Fatalf("revocation ttl = %v", ttl)
	}
	if _, err := svc.Authenticate(ctx, resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token accepted: %v", err)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	svc, _, _ := newAuthHarness(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &model.LoginRequest{RegistrationNumber: "220014748"})
	if err != nil {
		t.Fatal(err)
	}

	other := NewAuthService(newStubUserRepo(), &stubSessionCache{}, "other-secret", time.Hour, nil)
	if _, err := other.Authenticate(ctx, resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign signature accepted: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := svc.Authenticate(ctx, resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &model.UserClaims{UserID: "1"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := svc.Authenticate(ctx, unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unsigned token accepted: %v", err)
	}
}

func TestSignUp(t *testing.T) {
	svc, users, _ := newAuthHarness(t)
	ctx := context.Background()

	resp, err := svc.SignUp(ctx, &model.SignUpRequest{RegistrationNumber: "221234567", Email: "New@University.edu", FullName: " Ada "})
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if resp.User.Role != model.RoleStudent || resp.User.Email != "new@university.edu" || resp.User.FullName != "Ada" {
		t.Fatalf("user = %+v", resp.User)
	}
	if _, ok := users.users[resp.User.ID]; !ok {
		t.Fatal("user not stored")
	}

	if _, err := svc.SignUp(ctx, &model.SignUpRequest{RegistrationNumber: "220014748", Email: "x@university.edu", FullName: "Dup"}); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate registration: %v", err)
	}

	_, err = svc.SignUp(ctx, &model.SignUpRequest{RegistrationNumber: "12", Email: "not-an-email"})
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Invalid) != 2 || len(verr.Missing) != 1 {
		t.Fatalf("validation = %v", err)
	}

	me, err := svc.CurrentUser(ctx, resp.User.ID)
	if err != nil || me.ID != resp.User.ID {
		t.Fatalf("CurrentUser = %v, %v", me, err)
	}
	if _, err := svc.CurrentUser(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user: %v", err)
	}
}

func TestValidRegistrationNumber(t *testing.T) {
	for in, want := range map[string]bool{
		"220014748":  true,
		"200000000":  true,
		"320014748":  false,
		"22001474":   false,
		"2200147480": false,
		"22001474a":  false,
	} {
		if got := ValidRegistrationNumber(in); got != want {
			t.Errorf("%q = %v, want %v", in, got, want)
		}
	}
}

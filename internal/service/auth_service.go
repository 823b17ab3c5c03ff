package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"mindwell/internal/cache"
	"mindwell/internal/logger"
	"mindwell/internal/model"
	"mindwell/internal/repository"
)

var registrationNumberRe = regexp.MustCompile(`^2\d{8}$`)

// ValidRegistrationNumber reports whether s looks like a student registration number
func ValidRegistrationNumber(s string) bool {
	return registrationNumberRe.MatchString(s)
}

// AuthService handles student and staff sign-in with JWT sessions
type AuthService struct {
	users     repository.UserRepo
	sessions  cache.SessionCache
	jwtSecret []byte
	tokenTTL  time.Duration
	log       *logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users repository.UserRepo, sessions cache.SessionCache, secret string, tokenTTL time.Duration, log *logger.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: []byte(secret),
		tokenTTL:  tokenTTL,
		log:       log,
		now:       time.Now,
	}
}

// Login signs in a student by registration number or a staff member by email and password
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case req.RegistrationNumber != "":
		regNumber := strings.TrimSpace(req.RegistrationNumber)
		if !ValidRegistrationNumber(regNumber) {
			return nil, ErrInvalidCredentials
		}
		user, err = s.users.FindByRegistrationNumber(ctx, regNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to look up student: %w", err)
		}
		if user == nil || user.Role != model.RoleStudent {
			return nil, ErrInvalidCredentials
		}
	case req.Email != "":
		user, err = s.users.FindByEmail(ctx, normalizeEmail(req.Email))
		if err != nil {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if user == nil || user.PasswordHash == "" {
			return nil, ErrInvalidCredentials
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
	default:
		return nil, ErrInvalidCredentials
	}

	s.log.Info("user signed in", "user_id", user.ID, "role", user.Role)
	return s.issueToken(user)
}

// SignUp registers a new student and signs them in
func (s *AuthService) SignUp(ctx context.Context, req *model.SignUpRequest) (*model.LoginResponse, error) {
	regNumber := strings.TrimSpace(req.RegistrationNumber)
	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.FullName)

	verr := &ValidationError{}
	if !ValidRegistrationNumber(regNumber) {
		verr.Invalid = append(verr.Invalid, "registration_number")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		verr.Invalid = append(verr.Invalid, "email")
	}
	if name == "" {
		verr.Missing = append(verr.Missing, "full_name")
	}
	if len(verr.Invalid) > 0 || len(verr.Missing) > 0 {
		return nil, verr
	}

	existing, err := s.users.FindByRegistrationNumber(ctx, regNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	now := s.now().UTC()
	user := &model.User{
		ID:                 uuid.NewString(),
		RegistrationNumber: regNumber,
		Email:              email,
		FullName:           name,
		Role:               model.RoleStudent,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("student registered", "user_id", user.ID)
	return s.issueToken(user)
}

// Logout revokes the token until it would have expired anyway
func (s *AuthService) Logout(ctx context.Context, claims *model.UserClaims) error {
	if claims == nil || claims.ID == "" {
		return ErrInvalidToken
	}
	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	return s.sessions.Revoke(ctx, claims.ID, ttl)
}

// Authenticate validates a token and checks it has not been revoked
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*model.UserClaims, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}
	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser loads the signed-in user
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *AuthService) issueToken(user *model.User) (*model.LoginResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &model.UserClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt.UTC(),
		User:      user,
	}, nil
}

func (s *AuthService) parseToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAuthError is true for errors that should surface as 401
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken)
}

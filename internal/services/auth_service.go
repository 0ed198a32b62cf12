package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/themizzi/storefront-e2e/internal/dataset"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLockedOut          = errors.New("account locked out")
	ErrUserExists         = errors.New("account already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingFields      = errors.New("all fields are required")
)

// User is a storefront account.
type User struct {
	Identifier   string
	FirstName    string
	LastName     string
	PasswordHash []byte
	Locked       bool
}

// DisplayName is what the header greets the user with.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Identifier
	}
	return name
}

// Claims identify a signed-in shopper.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// AuthService stores accounts and issues session tokens.
type AuthService struct {
	secret   []byte
	cost     int
	tokenTTL time.Duration
	log      *log.Logger

	mu    sync.RWMutex
	users map[string]*User
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) AuthOption {
	return func(s *AuthService) { s.cost = cost }
}

// NewAuthService returns a service seeded with the demo accounts.
func NewAuthService(secret string, logger *log.Logger, opts ...AuthOption) (*AuthService, error) {
	s := &AuthService{
		secret:   []byte(secret),
		cost:     bcrypt.DefaultCost,
		tokenTTL: 24 * time.Hour,
		log:      logger,
		users:    make(map[string]*User),
	}
	for _, opt := range opts {
		opt(s)
	}

	seeds := []struct {
		cred   dataset.Credential
		locked bool
	}{
		{dataset.ValidUser, false},
		{dataset.ProblemUser, false},
		{dataset.LockedOutUser, true},
		{dataset.Credential{Identifier: "test@example.com", Secret: "TestPassword123!", FirstName: "Test", LastName: "User"}, false},
	}
	for _, seed := range seeds {
		u, err := s.newUser(seed.cred.Identifier, seed.cred.Secret, seed.cred.FirstName, seed.cred.LastName)
		if err != nil {
			return nil, fmt.Errorf("seed %s: %w", seed.cred.Identifier, err)
		}
		u.Locked = seed.locked
		s.users[key(u.Identifier)] = u
	}
	return s, nil
}

func key(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

func (s *AuthService) newUser(identifier, password, first, last string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &User{
		Identifier:   strings.TrimSpace(identifier),
		FirstName:    first,
		LastName:     last,
		PasswordHash: hash,
	}, nil
}

// Authenticate checks identifier and password.
func (s *AuthService) Authenticate(identifier, password string) (*User, error) {
	s.mu.RLock()
	u, ok := s.users[key(identifier)]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Locked {
		return nil, ErrLockedOut
	}
	return u, nil
}

// Register creates an account. identifier may be an email or a username.
func (s *AuthService) Register(identifier, password, confirm, first, last string) (*User, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if confirm != "" && confirm != password {
		return nil, errors.New("passwords do not match")
	}

	u, err := s.newUser(identifier, password, first, last)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[key(identifier)]; exists {
		return nil, ErrUserExists
	}
	s.users[key(identifier)] = u
	s.log.Info("Registered account", "identifier", u.Identifier)
	return u, nil
}

// RequestPasswordReset always reports success so it cannot be used to probe
// for accounts. Known accounts are logged.
func (s *AuthService) RequestPasswordReset(email string) {
	s.mu.RLock()
	_, ok := s.users[key(email)]
	s.mu.RUnlock()
	if ok {
		s.log.Info("Password reset requested", "identifier", email)
	}
}

// IssueToken signs a session token for u.
func (s *AuthService) IssueToken(u *User) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: u.DisplayName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Identifier,
			Issuer:    "storefront",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates a token issued by IssueToken.
func (s *AuthService) ParseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

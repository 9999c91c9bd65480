// Package mockidp is an in-process IdentityService standing in for the
// hosted identity provider the client normally delegates to. Accounts live
// in memory with bcrypt password hashes; the active session is carried as a
// signed token the same way a hosted provider hands the client an ID token.
package mockidp

import (
	"context"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	jobnest "github.com/jobnest/go-jobnest"
)

// MinPasswordLength is the weakest password the provider accepts.
const MinPasswordLength = 6

var _ jobnest.IdentityService = (*Service)(nil)

type account struct {
	id    string
	email string
	hash  string
}

// Option customizes service construction.
type Option func(*Service)

// WithLogger overrides the fallback logger.
func WithLogger(logger jobnest.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithBcryptCost overrides the password hashing cost. Tests use
// bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// WithSigningKey pins the session token signing key. By default a random
// per-process key is used, so sessions do not outlive the process.
func WithSigningKey(key []byte) Option {
	return func(s *Service) {
		if len(key) > 0 {
			s.signingKey = key
		}
	}
}

// WithTokenTTL overrides the session token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// Service implements jobnest.IdentityService against in-memory state.
type Service struct {
	mu         sync.Mutex
	accounts   map[string]account // keyed by normalized email
	session    string             // signed token for the active session, "" when none
	listeners  map[int]func(*jobnest.Account)
	listenerID int

	signingKey []byte
	tokenTTL   time.Duration
	cost       int
	now        func() time.Time
	logger     jobnest.Logger
}

// New builds an empty identity service.
func New(opts ...Option) *Service {
	s := &Service{
		accounts:   map[string]account{},
		listeners:  map[int]func(*jobnest.Account){},
		signingKey: []byte(uuid.NewString()),
		tokenTTL:   time.Hour,
		cost:       bcrypt.DefaultCost,
		now:        time.Now,
		logger:     jobnest.DefaultLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Seed registers an account without signing it in. It reports the issued
// account so fixtures can reference the id.
func (s *Service) Seed(email, password string) (jobnest.Account, error) {
	return s.register(email, password, false)
}

// CreateAccount registers a new account and signs it in, notifying session
// listeners. Duplicate emails and weak passwords are rejected.
func (s *Service) CreateAccount(_ context.Context, email, password string) (jobnest.Account, error) {
	return s.register(email, password, true)
}

func (s *Service) register(email, password string, signIn bool) (jobnest.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return jobnest.Account{}, err
	}
	if len(password) < MinPasswordLength {
		return jobnest.Account{}, jobnest.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return jobnest.Account{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		return jobnest.Account{}, jobnest.ErrAccountExists
	}
	acct := account{id: uuid.NewString(), email: email, hash: string(hash)}
	s.accounts[email] = acct
	result := jobnest.Account{UserID: acct.id, Email: acct.email}
	var listeners []func(*jobnest.Account)
	if signIn {
		token, merr := s.mintLocked(acct)
		if merr != nil {
			s.mu.Unlock()
			return jobnest.Account{}, merr
		}
		s.session = token
		listeners = s.listenersLocked()
	}
	s.mu.Unlock()

	if signIn {
		s.logger.Debug("account created for %s", email)
		notify(listeners, &result)
	}
	return result, nil
}

// VerifyCredentials checks the password for the account and signs it in,
// notifying session listeners. Unknown emails and wrong passwords both map
// to the same credential rejection.
func (s *Service) VerifyCredentials(_ context.Context, email, password string) (jobnest.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return jobnest.Account{}, err
	}

	s.mu.Lock()
	acct, exists := s.accounts[email]
	s.mu.Unlock()
	if !exists {
		return jobnest.Account{}, jobnest.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.hash), []byte(password)); err != nil {
		return jobnest.Account{}, jobnest.ErrInvalidCredentials
	}

	s.mu.Lock()
	token, merr := s.mintLocked(acct)
	if merr != nil {
		s.mu.Unlock()
		return jobnest.Account{}, merr
	}
	s.session = token
	result := jobnest.Account{UserID: acct.id, Email: acct.email}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, &result)
	return result, nil
}

// EndSession drops the active session and notifies listeners. Ending an
// already-ended session succeeds.
func (s *Service) EndSession(_ context.Context) error {
	s.mu.Lock()
	s.session = ""
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, nil)
	return nil
}

// OnSessionChange registers a session listener and invokes it synchronously
// with the current session state, so subscribers always get an initial
// resolution event. The returned function unsubscribes.
func (s *Service) OnSessionChange(fn func(active *jobnest.Account)) func() {
	s.mu.Lock()
	s.listenerID++
	id := s.listenerID
	s.listeners[id] = fn
	current := s.currentLocked()
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// CurrentSession returns the active session's account, if any. Expired
// tokens count as no session.
func (s *Service) CurrentSession() (*jobnest.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.currentLocked()
	return acct, acct != nil
}

// SessionToken exposes the raw signed token for the active session.
func (s *Service) SessionToken() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.session != ""
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

func (s *Service) mintLocked(a account) (string, error) {
	now := s.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Email: a.email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign session token")
	}
	return token, nil
}

func (s *Service) currentLocked() *jobnest.Account {
	if s.session == "" {
		return nil
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(s.session, &claims,
		func(*jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		s.logger.Debug("session token no longer valid: %v", err)
		return nil
	}

	return &jobnest.Account{UserID: claims.Subject, Email: claims.Email}
}

func (s *Service) listenersLocked() []func(*jobnest.Account) {
	out := make([]func(*jobnest.Account), 0, len(s.listeners))
	for _, fn := range s.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(*jobnest.Account), active *jobnest.Account) {
	for _, fn := range listeners {
		fn(active)
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryValidation, "invalid email address").
			WithCode(goerrors.CodeBadRequest)
	}
	return email, nil
}

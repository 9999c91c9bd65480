package jobnest

import (
	"context"
	"sync"
	"time"
)

// fixedNow is the deterministic clock value the tests run against.
var fixedNow = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// stubIdentity is a scripted IdentityService. Each operation delegates to the
// matching func field; session events are driven through emit.
type stubIdentity struct {
	mu sync.Mutex

	createFn func(ctx context.Context, email, password string) (Account, error)
	verifyFn func(ctx context.Context, email, password string) (Account, error)
	endFn    func(ctx context.Context) error

	// initial is delivered synchronously when a listener subscribes.
	initial *Account

	listeners []func(*Account)

	endCalls int
}

func (s *stubIdentity) CreateAccount(ctx context.Context, email, password string) (Account, error) {
	if s.createFn != nil {
		return s.createFn(ctx, email, password)
	}
	return Account{UserID: "stub-id", Email: email}, nil
}

func (s *stubIdentity) VerifyCredentials(ctx context.Context, email, password string) (Account, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, email, password)
	}
	return Account{UserID: "stub-id", Email: email}, nil
}

func (s *stubIdentity) EndSession(ctx context.Context) error {
	s.mu.Lock()
	s.endCalls++
	s.mu.Unlock()
	if s.endFn != nil {
		return s.endFn(ctx)
	}
	return nil
}

func (s *stubIdentity) OnSessionChange(fn func(active *Account)) func() {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	initial := s.initial
	s.mu.Unlock()

	fn(initial)
	return func() {}
}

// emit delivers a session event to every subscribed listener.
func (s *stubIdentity) emit(active *Account) {
	s.mu.Lock()
	listeners := make([]func(*Account), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(active)
	}
}

// recordingStorage is an in-memory SessionStorage with optional scripted
// failures and call counters.
type recordingStorage struct {
	mu   sync.Mutex
	data map[string]string

	getErr error
	setErr error
	delErr error

	sets    int
	deletes int
}

func newRecordingStorage() *recordingStorage {
	return &recordingStorage{data: map[string]string{}}
}

func (r *recordingStorage) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return "", false, r.getErr
	}
	value, ok := r.data[key]
	return value, ok, nil
}

func (r *recordingStorage) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets++
	if r.setErr != nil {
		return r.setErr
	}
	r.data[key] = value
	return nil
}

func (r *recordingStorage) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	if r.delErr != nil {
		return r.delErr
	}
	delete(r.data, key)
	return nil
}

func (r *recordingStorage) value(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.data[key]
	return value, ok
}

// memLogger captures log lines so tests can assert on warnings without
// touching stdout.
type memLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *memLogger) Debug(format string, args ...any) { l.record(format) }
func (l *memLogger) Info(format string, args ...any)  { l.record(format) }
func (l *memLogger) Warn(format string, args ...any)  { l.record(format) }
func (l *memLogger) Error(format string, args ...any) { l.record(format) }

func (l *memLogger) record(format string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, format)
}

// seekerProfile builds a valid seeker profile for tests.
func seekerProfile(id, email string) *Profile {
	return &Profile{
		ID:        id,
		Name:      "Test Seeker",
		Email:     email,
		Role:      RoleSeeker,
		CreatedAt: fixedNow,
		Seeker: &SeekerFields{
			Skills:   []string{"Go"},
			Location: "Remote",
		},
	}
}

// providerProfile builds a valid provider profile for tests.
func providerProfile(id, email string) *Profile {
	return &Profile{
		ID:        id,
		Name:      "Test Provider",
		Email:     email,
		Role:      RoleProvider,
		CreatedAt: fixedNow,
		Provider: &ProviderFields{
			CompanyName: "Acme",
		},
	}
}

func newTestManager(idp IdentityService, storage SessionStorage) *Manager {
	return NewManager(idp, storage,
		WithClock(fixedClock),
		WithLogger(&memLogger{}),
	)
}

package jobnest

import (
	"context"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultStorageKey is the fixed storage slot the session profile blob lives
// under.
const DefaultStorageKey = "jobNestUser"

// Snapshot is the published view of session state. While Loading is true the
// User value is unreliable and role-gated UI must not render from it.
type Snapshot struct {
	User       *Profile
	Loading    bool
	Phase      Phase
	Generation uint64
}

// ManagerOption customizes manager construction.
type ManagerOption func(*Manager)

// WithLogger overrides the fallback stdout logger.
func WithLogger(logger Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithClock injects a custom clock (useful for tests).
func WithClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) {
		if clock != nil {
			m.now = clock
		}
	}
}

// WithStorageKey overrides the storage slot key.
func WithStorageKey(key string) ManagerOption {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// Manager is the single source of truth for the current authenticated user.
// It reconciles the identity provider's session events with the locally
// persisted profile blob and offers the only sanctioned session mutators.
//
// A single mutex guards all state. Provider callbacks and explicit
// Login/Signup/Logout calls may interleave; each state-publishing write
// carries a generation, and publish discards writes older than the newest
// published one. Provider events allocate theirs at event arrival; explicit
// operations allocate after the provider call returns, so a session event the
// operation itself triggered cannot outrank the operation's own publish.
type Manager struct {
	mu      sync.Mutex
	idp     IdentityService
	storage SessionStorage
	logger  Logger
	now     func() time.Time
	key     string

	current    *Profile
	loading    bool
	phase      Phase
	writes     uint64 // generation allocator
	generation uint64 // newest published generation

	subscribers map[chan Snapshot]struct{}
	unsubscribe func()
	started     bool
	closed      bool
}

// NewManager builds a manager around the given identity service and storage
// slot. Call Start to begin receiving session events.
func NewManager(idp IdentityService, storage SessionStorage, opts ...ManagerOption) *Manager {
	m := &Manager{
		idp:         idp,
		storage:     storage,
		logger:      defLogger{},
		now:         time.Now,
		key:         DefaultStorageKey,
		loading:     true,
		phase:       PhaseInitializing,
		subscribers: map[chan Snapshot]struct{}{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// Start subscribes to the identity provider's session events. Loading stays
// true until the first event has been handled. Calling Start twice is a
// no-op.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	if m.started || m.closed {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	// Providers deliver the current state synchronously on subscribe, which
	// re-enters the manager; the lock must not be held here.
	unsubscribe := m.idp.OnSessionChange(func(active *Account) {
		m.handleSessionChange(ctx, active)
	})

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
}

// Close detaches from the identity provider and closes all subscriber
// channels.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	for ch := range m.subscribers {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Snapshot returns the current session state. The profile is a copy.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// CurrentUser returns the published profile, nil when anonymous.
func (m *Manager) CurrentUser() *Profile {
	return m.Snapshot().User
}

// Loading reports whether session state is still resolving.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Subscribe registers for snapshot updates. The channel receives the current
// snapshot immediately and every published change after that; slow receivers
// miss updates rather than block the manager. The returned function
// unsubscribes and closes the channel.
func (m *Manager) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	m.subscribers[ch] = struct{}{}
	ch <- m.snapshotLocked()
	m.mu.Unlock()

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.subscribers[ch]; ok {
			delete(m.subscribers, ch)
			close(ch)
		}
	}
}

// Login delegates credential verification to the identity provider and, on
// success, substitutes the role's demo profile for the missing backend
// lookup, persists it, and publishes it.
//
// The fixture substitution is a known simplification: a real deployment
// replaces DemoProfile with a profile-fetch call and treats absence as an
// error rather than a silent default.
func (m *Manager) Login(ctx context.Context, email, password string, role Role) error {
	if !role.IsValid() {
		return ErrUnknownRole.WithMetadata(map[string]any{"role": role})
	}

	done := m.beginWrite()
	defer done()

	acct, err := m.idp.VerifyCredentials(ctx, email, password)
	if err != nil {
		m.logger.Info("login rejected for %s: %v", email, err)
		return credentialFailure(err, "invalid email or password", email)
	}

	profile := DemoProfile(role, acct.UserID, acct.Email, m.now())
	if err := m.persist(ctx, profile); err != nil {
		return err
	}

	m.publish(m.nextGen(), profile)
	return nil
}

// Signup delegates account creation to the identity provider using the
// partial profile's email, merges the provider-issued id and a current
// timestamp into the profile, persists it, and publishes it.
func (m *Manager) Signup(ctx context.Context, partial *Profile, password string) error {
	if partial == nil || partial.Email == "" {
		return goerrors.New("signup requires a profile with an email", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	done := m.beginWrite()
	defer done()

	acct, err := m.idp.CreateAccount(ctx, partial.Email, password)
	if err != nil {
		m.logger.Info("signup rejected for %s: %v", partial.Email, err)
		return credentialFailure(err, "account creation rejected", partial.Email)
	}

	profile := partial.Clone()
	profile.ID = acct.UserID
	if acct.Email != "" {
		profile.Email = acct.Email
	}
	profile.CreatedAt = m.now()

	if err := profile.Validate(); err != nil {
		return err
	}
	if err := m.persist(ctx, profile); err != nil {
		return err
	}

	m.publish(m.nextGen(), profile)
	return nil
}

// Logout delegates to the identity provider's sign-out, clears the persisted
// slot, and publishes nil. Local state is cleared even when the provider
// sign-out fails; the caller still gets the teardown error. Logging out while
// already logged out succeeds.
func (m *Manager) Logout(ctx context.Context) error {
	done := m.beginWrite()
	defer done()

	err := m.idp.EndSession(ctx)

	if derr := m.storage.Delete(ctx, m.key); derr != nil {
		m.logger.Error("failed to clear persisted session: %v", derr)
	}
	m.publish(m.nextGen(), nil)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "identity provider sign-out failed").
			WithTextCode(textCodeSessionTeardown).
			WithCode(goerrors.CodeInternal)
	}
	return nil
}

// handleSessionChange reconciles a provider session event with the persisted
// blob. Loading is cleared exactly once per event, whichever branch runs.
func (m *Manager) handleSessionChange(ctx context.Context, active *Account) {
	done := m.beginWrite()
	defer done()
	gen := m.nextGen()

	m.mu.Lock()
	if m.phase == PhaseInitializing {
		m.advanceLocked(PhaseResolving)
		m.broadcastLocked()
	}
	m.mu.Unlock()

	if active == nil {
		if err := m.storage.Delete(ctx, m.key); err != nil {
			m.logger.Error("failed to clear persisted session: %v", err)
		}
		m.publish(gen, nil)
		return
	}

	raw, ok, err := m.storage.Get(ctx, m.key)
	if err != nil {
		m.logger.Error("failed to read persisted session: %v", err)
		m.publish(gen, nil)
		return
	}
	if !ok {
		// Active provider session with no local profile. There is no backend
		// to re-fetch from, so the session resolves as anonymous.
		m.logger.Warn("active session with no persisted profile for user %s", active.UserID)
		m.publish(gen, nil)
		return
	}

	profile, err := DecodeProfile(raw, m.now())
	if err != nil {
		m.logger.Error("failed to decode persisted session profile: %v", err)
		m.publish(gen, nil)
		return
	}

	// The provider-issued identity wins over whatever the blob carried.
	profile.ID = active.UserID
	if active.Email != "" {
		profile.Email = active.Email
	}

	m.publish(gen, profile)
}

// beginWrite raises the loading flag for a state-publishing write. The
// returned done func restores loading and must run on every exit path.
func (m *Manager) beginWrite() (done func()) {
	m.mu.Lock()
	m.loading = true
	m.broadcastLocked()
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		m.loading = false
		m.broadcastLocked()
		m.mu.Unlock()
	}
}

// nextGen allocates a generation for a publish. Event handling allocates at
// event arrival; explicit operations allocate only after the provider call
// has returned. Providers that deliver session events synchronously (mockidp
// does, during VerifyCredentials and CreateAccount) would otherwise hand the
// triggered event a newer generation than the operation that caused it, and
// the operation's publish would be discarded as stale.
func (m *Manager) nextGen() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	return m.writes
}

// publish installs the profile for gen unless a newer write already
// published; stale writes are discarded so the latest truth about session
// state wins regardless of completion order.
func (m *Manager) publish(gen uint64, p *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen < m.generation {
		m.logger.Debug("discarding stale session write: generation=%d published=%d", gen, m.generation)
		return
	}

	m.generation = gen
	m.current = p

	target := PhaseAnonymous
	if p != nil {
		target = PhaseAuthenticated
	}
	if m.phase == PhaseInitializing {
		// Writes can land before the provider's first event.
		m.advanceLocked(PhaseResolving)
	}
	m.advanceLocked(target)

	m.broadcastLocked()
}

func (m *Manager) advanceLocked(to Phase) {
	if m.phase == to {
		return
	}
	if !CanTransition(m.phase, to) {
		m.logger.Warn("unexpected session phase transition: %s -> %s", m.phase, to)
	}
	m.phase = to
}

func (m *Manager) persist(ctx context.Context, p *Profile) error {
	raw, err := EncodeProfile(p)
	if err != nil {
		return err
	}
	if err := m.storage.Set(ctx, m.key, raw); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist session profile")
	}
	return nil
}

func (m *Manager) snapshotLocked() Snapshot {
	return Snapshot{
		User:       m.current.Clone(),
		Loading:    m.loading,
		Phase:      m.phase,
		Generation: m.generation,
	}
}

func (m *Manager) broadcastLocked() {
	if len(m.subscribers) == 0 {
		return
	}
	snap := m.snapshotLocked()
	for ch := range m.subscribers {
		select {
		case ch <- snap:
		default:
			// drop if slow
		}
	}
}

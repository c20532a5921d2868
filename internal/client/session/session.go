// Package session owns the client's authentication state.
//
// A Session starts in StateUnknown with Loading() == true. Restore reads the
// credential store once and moves it to StateAuthenticated or
// StateAnonymous; Loading() stays false from then on. All later transitions
// go through Establish, ReplaceUser, Logout and Expire. Expire is the forced
// logout used by the request gateway when the API answers 401.
//
// Login and registration attempts are tagged with a generation number from
// Begin. Establish refuses a credential whose generation is older than the
// latest attempt, so a slow response cannot overwrite newer state. Logout
// and Expire also advance the generation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/secondwear/internal/client/credentials"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/logging"
)

type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var (
	ErrStaleAttempt     = errors.New("a newer attempt superseded this response")
	ErrNotAuthenticated = errors.New("not authenticated")
)

type Session struct {
	mu         sync.RWMutex
	store      credentials.Store
	log        logging.Logger
	state      State
	token      string
	user       models.User
	loading    bool
	generation uint64
}

func New(store credentials.Store, log logging.Logger) *Session {
	return &Session{
		store:   store,
		log:     log.With("component", "session"),
		state:   StateUnknown,
		loading: true,
	}
}

// Restore hydrates the session from the credential store. It runs once;
// later calls are no-ops. A store failure leaves the session anonymous and
// is returned for logging only.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnknown {
		return nil
	}
	defer func() { s.loading = false }()

	c, err := s.store.Load(ctx)
	if err != nil {
		s.state = StateAnonymous
		s.log.Warn(ctx, "credential store unreadable, starting anonymous", "error", err)
		return fmt.Errorf("restore session: %w", err)
	}
	if c == nil {
		s.state = StateAnonymous
		s.log.Debug(ctx, "no stored credential")
		return nil
	}

	s.token = c.Token
	s.user = c.User
	s.state = StateAuthenticated
	s.log.Debug(ctx, "session restored", "user_id", c.User.ID)
	return nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading is true only until Restore has finished.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Token returns the bearer token or "" when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

// User returns the current user snapshot.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.state == StateAuthenticated
}

// Begin starts a new login/registration attempt and returns its generation.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// Establish persists c and makes the session authenticated, unless a newer
// attempt was begun after gen. On a storage error the state is unchanged.
func (s *Session) Establish(ctx context.Context, gen uint64, c models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Debug(ctx, "dropping stale credential", "generation", gen, "current", s.generation)
		return ErrStaleAttempt
	}

	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.token = c.Token
	s.user = c.User
	s.state = StateAuthenticated
	s.loading = false
	return nil
}

// ReplaceUser swaps the user snapshot wholesale and re-persists it.
func (s *Session) ReplaceUser(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAuthenticated {
		return ErrNotAuthenticated
	}
	if err := s.store.SaveUser(ctx, u); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.user = u
	return nil
}

// Logout moves to StateAnonymous from any state and clears the store.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.reset(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "logged out")
	return nil
}

// Expire is the forced logout triggered by an authorization failure.
func (s *Session) Expire(ctx context.Context) {
	if err := s.reset(ctx); err != nil {
		s.log.Error(ctx, "failed to clear expired credential", "error", err)
		return
	}
	s.log.Warn(ctx, "session expired, credential cleared")
}

func (s *Session) reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.token = ""
	s.user = models.User{}
	s.state = StateAnonymous
	s.loading = false

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

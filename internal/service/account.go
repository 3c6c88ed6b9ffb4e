package service

import (
	"context"
	"sync"
	"time"

	"makernet/internal/api"
	"makernet/internal/models"
	"makernet/internal/observability"
	"makernet/internal/validation"
	"makernet/internal/view"
)

// AccountAPI is the slice of the API client the settings screen uses.
type AccountAPI interface {
	Me(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (models.User, error)
	CheckUsernameAvailable(ctx context.Context, username string) (bool, error)
}

// AccountService drives the account settings screen.
type AccountService struct {
	api AccountAPI
	log *observability.RequestLogger
}

// NewAccountService returns an AccountService.
func NewAccountService(apiClient AccountAPI) *AccountService {
	return &AccountService{
		api: apiClient,
		log: observability.NewRequestLogger("account"),
	}
}

// Me fetches the current account record.
func (s *AccountService) Me(ctx context.Context) (models.User, error) {
	return s.api.Me(ctx)
}

// UpdateProfile applies profile changes.
func (s *AccountService) UpdateProfile(ctx context.Context, update api.ProfileUpdate) (models.User, error) {
	user, err := s.api.UpdateProfile(ctx, update)
	s.log.LogAction(ctx, "update_profile", err, nil)
	return user, err
}

// UsernameChecker validates a candidate username: static rules first,
// short-circuiting at the first failure, then a debounced availability call
// against the backend. The save action must stay disabled whenever Err is
// non-nil or a check is in flight.
type UsernameChecker struct {
	api      AccountAPI
	debounce *view.Debouncer

	mu       sync.Mutex
	current  string // the user's existing username, always acceptable
	seq      uint64 // fences in-flight availability results
	checking bool
	err      error
}

// NewUsernameChecker creates a checker for the given existing username.
// delay is the debounce interval before the availability endpoint is hit;
// view.UsernameDebounce is the standard value.
func (s *AccountService) NewUsernameChecker(current string, delay time.Duration) *UsernameChecker {
	return &UsernameChecker{
		api:      s.api,
		debounce: view.NewDebouncer(delay),
		current:  current,
	}
}

// Input feeds a new candidate value. Static validation runs immediately;
// when it passes, the availability call is scheduled behind the debounce.
// ctx bounds the eventual availability request.
func (uc *UsernameChecker) Input(ctx context.Context, name string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.seq++
	uc.checking = false
	if name == uc.current {
		uc.err = nil
		uc.debounce.Cancel()
		return
	}
	if err := validation.ValidateUsername(name); err != nil {
		uc.err = err
		uc.debounce.Cancel()
		return
	}

	// checking covers the whole window from scheduling to commit, so the
	// save gate cannot open before the availability result lands.
	uc.err = nil
	uc.checking = true
	seq := uc.seq
	uc.debounce.Trigger(func() {
		uc.check(ctx, seq, name)
	})
}

func (uc *UsernameChecker) check(ctx context.Context, seq uint64, name string) {
	available, err := uc.api.CheckUsernameAvailable(ctx, name)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if seq != uc.seq {
		// A newer candidate superseded this check while it was in flight.
		return
	}
	uc.checking = false
	switch {
	case err != nil:
		// An unreachable endpoint is never treated as available.
		uc.err = validation.ErrUsernameCheck
	case !available:
		uc.err = validation.ErrUsernameTaken
	default:
		uc.err = nil
	}
}

// Err returns the current validation error, nil when the candidate is
// acceptable so far.
func (uc *UsernameChecker) Err() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.err
}

// Checking reports whether an availability call is scheduled or in flight.
func (uc *UsernameChecker) Checking() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.checking
}

// CanSave reports whether the save action should be enabled: no error and
// no check in flight.
func (uc *UsernameChecker) CanSave() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.err == nil && !uc.checking
}

// Stop cancels any pending availability call, for teardown.
func (uc *UsernameChecker) Stop() {
	uc.debounce.Stop()
	uc.mu.Lock()
	uc.seq++
	uc.checking = false
	uc.mu.Unlock()
}

package store

import (
	"context"
	"sync"
)

// AuthStore tracks the signed-in user for one browsing session. It only
// mirrors snapshots from the identity provider; session validity and token
// lifecycle live behind the Identity boundary.
//
// States: anonymous (no user, not loading), checking (initial session probe
// in flight), authenticating (sign-in/up in flight), authenticated (user
// present).
type AuthStore struct {
	identity Identity

	mu            sync.Mutex
	user          *AuthUser
	authenticated bool
	admin         bool
	loading       bool
	checked       bool
	lastErr       string
}

func NewAuthStore(identity Identity) *AuthStore {
	return &AuthStore{identity: identity, loading: true}
}

// CheckSession performs the one-shot initial session probe: it subscribes to
// the provider's session-change notification, resolves on the first delivery
// and then stops probing. A nil delivery (signed out, or the profile
// document is missing) resolves to anonymous.
func (s *AuthStore) CheckSession(ctx context.Context, idToken string) {
	s.mu.Lock()
	if s.checked {
		s.mu.Unlock()
		return
	}
	s.checked = true
	s.loading = true
	s.mu.Unlock()

	changes := s.identity.SessionChanges(ctx, idToken)

	select {
	case user := <-changes:
		s.mu.Lock()
		s.loading = false
		if user != nil {
			u := *user
			s.user = &u
			s.authenticated = true
			s.admin = user.IsAdmin
		} else {
			s.user = nil
			s.authenticated = false
			s.admin = false
		}
		s.mu.Unlock()
	case <-ctx.Done():
		s.mu.Lock()
		s.loading = false
		s.user = nil
		s.authenticated = false
		s.admin = false
		s.mu.Unlock()
	}
}

// SignIn authenticates with email and password. On failure only the loading
// flag and error change: an already-authenticated user is not wiped by a
// failed re-auth attempt. There is no re-entrancy guard against concurrent
// sign-in calls; the last to resolve wins.
func (s *AuthStore) SignIn(ctx context.Context, email, password string) error {
	s.beginAuth()
	user, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		s.failAuth(err)
		return err
	}
	s.applyUser(user)
	return nil
}

// SignUp creates an account and signs the session in.
func (s *AuthStore) SignUp(ctx context.Context, in SignUpInput) error {
	s.beginAuth()
	user, err := s.identity.SignUp(ctx, in)
	if err != nil {
		s.failAuth(err)
		return err
	}
	s.applyUser(user)
	return nil
}

// SignInWithGoogle authenticates with an external-provider ID token.
func (s *AuthStore) SignInWithGoogle(ctx context.Context, idToken string) error {
	s.beginAuth()
	user, err := s.identity.SignInWithGoogle(ctx, idToken)
	if err != nil {
		s.failAuth(err)
		return err
	}
	s.applyUser(user)
	return nil
}

// SignOut clears the user, admin flag and error regardless of prior state.
func (s *AuthStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	uid := ""
	if s.user != nil {
		uid = s.user.ID
	}
	s.mu.Unlock()

	var err error
	if uid != "" {
		err = s.identity.SignOut(ctx, uid)
	}

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.admin = false
	s.lastErr = ""
	s.loading = false
	s.mu.Unlock()
	return err
}

// User returns a copy of the current user snapshot, or nil.
func (s *AuthStore) User() *AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// IsAdmin reports the admin flag as of the last sign-in/sign-up/session
// check. It does not update live.
func (s *AuthStore) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *AuthStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *AuthStore) beginAuth() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *AuthStore) failAuth(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err.Error()
	s.mu.Unlock()
}

func (s *AuthStore) applyUser(user AuthUser) {
	s.mu.Lock()
	u := user
	s.user = &u
	s.authenticated = true
	s.admin = user.IsAdmin
	s.loading = false
	s.lastErr = ""
	s.mu.Unlock()
}

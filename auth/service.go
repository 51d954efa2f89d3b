package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/atelierline/storefront-api/models"
	"github.com/atelierline/storefront-api/services"
	"github.com/atelierline/storefront-api/store"
)

// identityToolkitEndpoint is the password sign-in endpoint. The Admin SDK
// has no password-grant call, so sign-in goes through the provider's REST
// surface; everything else (sign-up, verification, revocation) uses the SDK.
const identityToolkitEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// IsAdminEmail is the single predicate for the back-office gate: an account
// is an administrator iff its email's lowercase form contains "admin". This
// is a placeholder policy kept for behavioral parity, not a real role
// system.
func IsAdminEmail(email string) bool {
	return strings.Contains(strings.ToLower(email), "admin")
}

// Service implements the identity-provider boundary on Firebase Auth plus
// the "users" profile collection.
type Service struct {
	Auth      *fbauth.Client
	Users     *services.UsersService
	WebAPIKey string

	// HTTPClient and Endpoint are overridable for tests.
	HTTPClient *http.Client
	Endpoint   string
}

var _ store.Identity = (*Service)(nil)

func NewService(authClient *fbauth.Client, users *services.UsersService, webAPIKey string) *Service {
	return &Service{
		Auth:       authClient,
		Users:      users,
		WebAPIKey:  webAPIKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Endpoint:   identityToolkitEndpoint,
	}
}

// SignUp creates the provider account and its profile document. The admin
// flag is derived here, once, from the email substring rule.
func (s *Service) SignUp(ctx context.Context, in store.SignUpInput) (store.AuthUser, error) {
	params := (&fbauth.UserToCreate{}).
		Email(in.Email).
		Password(in.Password)
	if name := strings.TrimSpace(in.FirstName + " " + in.LastName); name != "" {
		params = params.DisplayName(name)
	}

	rec, err := s.Auth.CreateUser(ctx, params)
	if err != nil {
		return store.AuthUser{}, fmt.Errorf("failed to sign up: %w", err)
	}

	profile := models.User{
		Email:       rec.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		PhoneNumber: in.PhoneNumber,
		IsAdmin:     IsAdminEmail(rec.Email),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Users.Set(ctx, rec.UID, profile); err != nil {
		return store.AuthUser{}, fmt.Errorf("failed to create user profile: %w", err)
	}

	return authUserFrom(rec.UID, profile), nil
}

// SignIn authenticates email/password against the provider, then loads the
// profile document, backfilling it for accounts that predate the profile
// collection.
func (s *Service) SignIn(ctx context.Context, email, password string) (store.AuthUser, error) {
	uid, err := s.passwordSignIn(ctx, email, password)
	if err != nil {
		return store.AuthUser{}, err
	}

	profile, err := s.Users.Get(ctx, uid)
	if errors.Is(err, services.ErrNotFound) {
		profile = models.User{
			Email:     email,
			IsAdmin:   IsAdminEmail(email),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Users.Set(ctx, uid, profile); err != nil {
			return store.AuthUser{}, fmt.Errorf("failed to create user profile: %w", err)
		}
	} else if err != nil {
		return store.AuthUser{}, fmt.Errorf("failed to sign in: %w", err)
	}

	return authUserFrom(uid, profile), nil
}

// SignInWithGoogle verifies the external provider's ID token and fetches or
// creates the profile document.
func (s *Service) SignInWithGoogle(ctx context.Context, idToken string) (store.AuthUser, error) {
	token, err := s.Auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return store.AuthUser{}, fmt.Errorf("failed to sign in with Google: %w", err)
	}

	email, _ := token.Claims["email"].(string)
	displayName, _ := token.Claims["name"].(string)

	profile, err := s.Users.Get(ctx, token.UID)
	if errors.Is(err, services.ErrNotFound) {
		first, last := splitName(displayName)
		profile = models.User{
			Email:     email,
			FirstName: first,
			LastName:  last,
			IsAdmin:   IsAdminEmail(email),
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Users.Set(ctx, token.UID, profile); err != nil {
			return store.AuthUser{}, fmt.Errorf("failed to create user profile: %w", err)
		}
	} else if err != nil {
		return store.AuthUser{}, fmt.Errorf("failed to sign in with Google: %w", err)
	}

	return authUserFrom(token.UID, profile), nil
}

// SignOut revokes the user's refresh tokens.
func (s *Service) SignOut(ctx context.Context, uid string) error {
	if err := s.Auth.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

// SessionChanges delivers the current session snapshot once: the verified
// user behind idToken, or nil when the token is absent/invalid or the
// profile document is missing.
func (s *Service) SessionChanges(ctx context.Context, idToken string) <-chan *store.AuthUser {
	ch := make(chan *store.AuthUser, 1)

	go func() {
		defer close(ch)

		if idToken == "" {
			ch <- nil
			return
		}

		token, err := s.Auth.VerifyIDToken(ctx, idToken)
		if err != nil {
			ch <- nil
			return
		}

		profile, err := s.Users.Get(ctx, token.UID)
		if err != nil {
			// Missing or unreadable profile: treat as unauthenticated,
			// surface no profile.
			ch <- nil
			return
		}

		user := authUserFrom(token.UID, profile)
		ch <- &user
	}()

	return ch
}

// passwordSignIn exchanges email/password for a UID via the Identity
// Toolkit REST endpoint.
func (s *Service) passwordSignIn(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	url := s.Endpoint + "?key=" + s.WebAPIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to sign in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("failed to sign in: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("failed to sign in: status %d", resp.StatusCode)
	}

	var out struct {
		LocalID string `json:"localId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to sign in: %w", err)
	}
	if out.LocalID == "" {
		return "", errors.New("failed to sign in: empty uid in response")
	}
	return out.LocalID, nil
}

func authUserFrom(uid string, profile models.User) store.AuthUser {
	return store.AuthUser{
		ID:          uid,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		PhoneNumber: profile.PhoneNumber,
		IsAdmin:     profile.IsAdmin,
	}
}

func splitName(displayName string) (first, last string) {
	parts := strings.Fields(displayName)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

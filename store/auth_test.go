package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSessionResolvesToUser(t *testing.T) {
	identity := &fakeIdentity{sessionUser: &AuthUser{ID: "uid-1", Email: "ana@example.com"}}
	auth := NewAuthStore(identity)
	assert.True(t, auth.Loading())

	auth.CheckSession(context.Background(), "some-token")

	assert.False(t, auth.Loading())
	assert.True(t, auth.IsAuthenticated())
	require.NotNil(t, auth.User())
	assert.Equal(t, "uid-1", auth.User().ID)
}

func TestCheckSessionResolvesToAnonymous(t *testing.T) {
	identity := &fakeIdentity{sessionUser: nil}
	auth := NewAuthStore(identity)

	auth.CheckSession(context.Background(), "")

	assert.False(t, auth.Loading())
	assert.False(t, auth.IsAuthenticated())
	assert.Nil(t, auth.User())
}

func TestCheckSessionRunsOnce(t *testing.T) {
	identity := &fakeIdentity{sessionUser: nil}
	auth := NewAuthStore(identity)
	auth.CheckSession(context.Background(), "")

	// A later probe must not flip the state back to loading or re-subscribe.
	identity.sessionUser = &AuthUser{ID: "uid-1"}
	auth.CheckSession(context.Background(), "token")

	assert.False(t, auth.IsAuthenticated())
}

func TestSignInSuccess(t *testing.T) {
	identity := &fakeIdentity{signInUser: AuthUser{ID: "uid-1", Email: "ana@example.com", IsAdmin: false}}
	auth := NewAuthStore(identity)

	require.NoError(t, auth.SignIn(context.Background(), "ana@example.com", "secret"))

	assert.True(t, auth.IsAuthenticated())
	assert.False(t, auth.IsAdmin())
	assert.Empty(t, auth.Err())
	assert.False(t, auth.Loading())
}

func TestFailedSignInKeepsExistingUser(t *testing.T) {
	identity := &fakeIdentity{signInUser: AuthUser{ID: "uid-1", Email: "ana@example.com"}}
	auth := NewAuthStore(identity)
	require.NoError(t, auth.SignIn(context.Background(), "ana@example.com", "secret"))

	identity.signInErr = errors.New("wrong password")
	err := auth.SignIn(context.Background(), "ana@example.com", "nope")
	require.Error(t, err)

	// The prior session survives a failed re-auth attempt.
	assert.True(t, auth.IsAuthenticated())
	require.NotNil(t, auth.User())
	assert.Equal(t, "uid-1", auth.User().ID)
	assert.Equal(t, "wrong password", auth.Err())

	auth.ClearError()
	assert.Empty(t, auth.Err())
}

func TestSignUpSetsAdminFromProvider(t *testing.T) {
	identity := &fakeIdentity{signUpUser: AuthUser{ID: "uid-2", Email: "admin@example.com", IsAdmin: true}}
	auth := NewAuthStore(identity)

	require.NoError(t, auth.SignUp(context.Background(), SignUpInput{
		Email:    "admin@example.com",
		Password: "secret",
	}))

	assert.True(t, auth.IsAuthenticated())
	assert.True(t, auth.IsAdmin())
}

func TestSignInWithGoogle(t *testing.T) {
	identity := &fakeIdentity{googleUser: AuthUser{ID: "uid-3", Email: "ana@gmail.com"}}
	auth := NewAuthStore(identity)

	require.NoError(t, auth.SignInWithGoogle(context.Background(), "google-id-token"))
	assert.True(t, auth.IsAuthenticated())
}

func TestSignOutClearsStateEvenOnProviderError(t *testing.T) {
	identity := &fakeIdentity{
		signInUser: AuthUser{ID: "uid-1", Email: "ana@example.com", IsAdmin: true},
		signOutErr: errors.New("revoke failed"),
	}
	auth := NewAuthStore(identity)
	require.NoError(t, auth.SignIn(context.Background(), "ana@example.com", "secret"))

	err := auth.SignOut(context.Background())
	require.Error(t, err)

	assert.False(t, auth.IsAuthenticated())
	assert.False(t, auth.IsAdmin())
	assert.Nil(t, auth.User())
	assert.Empty(t, auth.Err())
	assert.Equal(t, "uid-1", identity.signedOutUID)
}

func TestSignOutWhileAnonymousSkipsProvider(t *testing.T) {
	identity := &fakeIdentity{}
	auth := NewAuthStore(identity)

	require.NoError(t, auth.SignOut(context.Background()))
	assert.Empty(t, identity.signedOutUID)
}

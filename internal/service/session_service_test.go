package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/aifa-contracts/internal/auth"
	"github.com/nurpe/aifa-contracts/internal/model"
	"github.com/nurpe/aifa-contracts/internal/session"
)

func operatorUser() *model.User {
	return &model.User{ID: "u-1", Name: "Ana", Email: "ana@aifa.mx", Role: model.UserRoleOperator}
}

func TestSessionService_CurrentWithoutToken(t *testing.T) {
	provider := &fakeProvider{user: operatorUser()}
	svc := NewSessionService(provider, fakeParser{}, nil, &recordingNotifier{}, zerolog.Nop())

	state := svc.Current(context.Background(), "")

	assert.Equal(t, session.ScreenLogin, state.Screen)
	assert.Nil(t, state.User)
	assert.Zero(t, provider.getUserCall)
}

func TestSessionService_CurrentInvalidToken(t *testing.T) {
	provider := &fakeProvider{user: operatorUser()}
	svc := NewSessionService(provider, fakeParser{err: auth.ErrInvalidToken}, nil, &recordingNotifier{}, zerolog.Nop())

	state := svc.Current(context.Background(), "garbage")

	assert.Equal(t, session.ScreenLogin, state.Screen)
	assert.Zero(t, provider.getUserCall)
}

func TestSessionService_CurrentValidSession(t *testing.T) {
	provider := &fakeProvider{user: operatorUser()}
	cache := newMemoryCache()
	parser := fakeParser{principal: model.Principal{UserID: "u-1", Role: model.UserRoleOperator}}
	svc := NewSessionService(provider, parser, cache, &recordingNotifier{}, zerolog.Nop())

	state := svc.Current(context.Background(), "token")

	assert.Equal(t, session.ScreenDashboard, state.Screen)
	require.NotNil(t, state.User)
	assert.Equal(t, "Ana", state.User.Name)
	assert.Equal(t, model.UserRoleOperator, state.User.Role)
	assert.Equal(t, 1, provider.getUserCall)

	cached, _ := cache.Get(context.Background(), "u-1")
	require.NotNil(t, cached)
	assert.Equal(t, "ana@aifa.mx", cached.Email)
}

func TestSessionService_CurrentUsesCache(t *testing.T) {
	provider := &fakeProvider{user: operatorUser()}
	cache := newMemoryCache()
	require.NoError(t, cache.Set(context.Background(), *operatorUser()))
	parser := fakeParser{principal: model.Principal{UserID: "u-1", Role: model.UserRoleOperator}}
	svc := NewSessionService(provider, parser, cache, &recordingNotifier{}, zerolog.Nop())

	state := svc.Current(context.Background(), "token")

	assert.Equal(t, session.ScreenDashboard, state.Screen)
	assert.Zero(t, provider.getUserCall)
}

func TestSessionService_CurrentProviderRejects(t *testing.T) {
	provider := &fakeProvider{err: auth.Classify("JWT expired")}
	parser := fakeParser{principal: model.Principal{UserID: "u-1", Role: model.UserRoleOperator}}
	svc := NewSessionService(provider, parser, newMemoryCache(), &recordingNotifier{}, zerolog.Nop())

	state := svc.Current(context.Background(), "token")

	assert.Equal(t, session.ScreenLogin, state.Screen)
}

func TestSessionService_SignInPublishes(t *testing.T) {
	provider := &fakeProvider{session: &auth.Session{
		AccessToken: "access",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        operatorUser(),
	}}
	notifier := &recordingNotifier{}
	cache := newMemoryCache()
	svc := NewSessionService(provider, fakeParser{}, cache, notifier, zerolog.Nop())

	result, err := svc.SignIn(context.Background(), " Ana@AIFA.mx ", "secret1")
	require.NoError(t, err)

	assert.Equal(t, session.ScreenDashboard, result.State.Screen)
	assert.Equal(t, "access", result.Session.AccessToken)
	require.Len(t, notifier.changes, 1)
	assert.Equal(t, session.EventSignedIn, notifier.changes[0].Type)
	cached, _ := cache.Get(context.Background(), "u-1")
	assert.NotNil(t, cached)
}

func TestSessionService_SignInRejectsBadInput(t *testing.T) {
	svc := NewSessionService(&fakeProvider{}, fakeParser{}, nil, &recordingNotifier{}, zerolog.Nop())

	_, err := svc.SignIn(context.Background(), "", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SignIn(context.Background(), "not-an-email", "secret")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSessionService_SignInProviderError(t *testing.T) {
	provider := &fakeProvider{err: auth.Classify("Invalid login credentials")}
	notifier := &recordingNotifier{}
	svc := NewSessionService(provider, fakeParser{}, nil, notifier, zerolog.Nop())

	_, err := svc.SignIn(context.Background(), "ana@aifa.mx", "wrong")

	var authErr *auth.Error
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, auth.KindInvalidCredentials, authErr.Kind)
	assert.Empty(t, notifier.changes)
}

func TestSessionService_SignUpPasswordLength(t *testing.T) {
	svc := NewSessionService(&fakeProvider{}, fakeParser{}, nil, &recordingNotifier{}, zerolog.Nop())

	_, err := svc.SignUp(context.Background(), SignUpInput{Email: "ana@aifa.mx", Password: "123"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	user, err := svc.SignUp(context.Background(), SignUpInput{Email: "ana@aifa.mx", Password: "123456", Name: " Ana "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, model.UserRoleViewer, user.Role)
}

func TestSessionService_SignOut(t *testing.T) {
	provider := &fakeProvider{}
	cache := newMemoryCache()
	require.NoError(t, cache.Set(context.Background(), *operatorUser()))
	notifier := &recordingNotifier{}
	svc := NewSessionService(provider, fakeParser{}, cache, notifier, zerolog.Nop())

	state, err := svc.SignOut(context.Background(), model.Principal{UserID: "u-1", Token: "access"})
	require.NoError(t, err)

	assert.Equal(t, session.ScreenLogin, state.Screen)
	assert.Equal(t, []string{"access"}, provider.signOuts)
	cached, _ := cache.Get(context.Background(), "u-1")
	assert.Nil(t, cached)
	require.Len(t, notifier.changes, 1)
	assert.Equal(t, session.EventSignedOut, notifier.changes[0].Type)
}

func TestSessionService_SignOutExpiredSession(t *testing.T) {
	provider := &fakeProvider{err: &auth.Error{Kind: auth.KindSessionExpired, Detail: "jwt expired"}}
	svc := NewSessionService(provider, fakeParser{}, nil, &recordingNotifier{}, zerolog.Nop())

	state, err := svc.SignOut(context.Background(), model.Principal{UserID: "u-1", Token: "old"})

	require.NoError(t, err)
	assert.Equal(t, session.ScreenLogin, state.Screen)
}

func TestSessionService_CurrentAlignsCachedRoleWithToken(t *testing.T) {
	provider := &fakeProvider{user: operatorUser()}
	cache := newMemoryCache()
	stale := *operatorUser()
	stale.Role = model.UserRoleAdmin
	require.NoError(t, cache.Set(context.Background(), stale))
	parser := fakeParser{principal: model.Principal{UserID: "u-1", Role: model.UserRoleViewer}}
	svc := NewSessionService(provider, parser, cache, &recordingNotifier{}, zerolog.Nop())

	state := svc.Current(context.Background(), "token")

	require.NotNil(t, state.User)
	assert.Equal(t, model.UserRoleViewer, state.User.Role)
	assert.Zero(t, provider.getUserCall)
	cached, _ := cache.Get(context.Background(), "u-1")
	require.NotNil(t, cached)
	assert.Equal(t, model.UserRoleViewer, cached.Role)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nurpe/aifa-contracts/internal/auth"
	"github.com/nurpe/aifa-contracts/internal/cache"
	"github.com/nurpe/aifa-contracts/internal/model"
	"github.com/nurpe/aifa-contracts/internal/session"
)

type AuthProvider interface {
	SignUp(ctx context.Context, email, password, name string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*model.User, error)
}

type TokenParser interface {
	Parse(token string) (model.Principal, error)
}

type SessionNotifier interface {
	Publish(change session.Change)
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

type SignInResult struct {
	Session *auth.Session
	State   session.State
}

// SessionService decides which top-level screen a caller sees and relays
// sign-in/out to the hosted auth provider.
type SessionService struct {
	provider AuthProvider
	parser   TokenParser
	cache    cache.UserCache
	notifier SessionNotifier
	log      zerolog.Logger
}

func NewSessionService(provider AuthProvider, parser TokenParser, userCache cache.UserCache, notifier SessionNotifier, log zerolog.Logger) *SessionService {
	if userCache == nil {
		userCache = cache.NopUserCache{}
	}
	return &SessionService{
		provider: provider,
		parser:   parser,
		cache:    userCache,
		notifier: notifier,
		log:      log,
	}
}

func (s *SessionService) SignUp(ctx context.Context, input SignUpInput) (*model.User, error) {
	email, err := validateCredentials(input.Email, input.Password)
	if err != nil {
		return nil, err
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must have at least 6 characters", ErrInvalidInput)
	}
	return s.provider.SignUp(ctx, email, input.Password, strings.TrimSpace(input.Name))
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}

	sess, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, *sess.User); err != nil {
		s.log.Warn().Err(err).Str("user_id", sess.User.ID).Msg("cache user failed")
	}
	s.notifier.Publish(session.Change{Type: session.EventSignedIn, UserID: sess.User.ID})

	state := session.Transition(session.LoggedOut(), session.Event{Type: session.EventSignedIn, User: sess.User})
	return &SignInResult{Session: sess, State: state}, nil
}

// SignOut ends the provider session and clears the cached user. An already
// expired provider session still signs the caller out locally.
func (s *SessionService) SignOut(ctx context.Context, principal model.Principal) (session.State, error) {
	if err := s.provider.SignOut(ctx, principal.Token); err != nil {
		var authErr *auth.Error
		if !errors.As(err, &authErr) || authErr.Kind != auth.KindSessionExpired {
			return session.State{}, err
		}
	}

	if err := s.cache.Delete(ctx, principal.UserID); err != nil {
		s.log.Warn().Err(err).Str("user_id", principal.UserID).Msg("evict cached user failed")
	}
	s.notifier.Publish(session.Change{Type: session.EventSignedOut, UserID: principal.UserID})

	return session.Transition(session.State{}, session.Event{Type: session.EventSignedOut}), nil
}

// Current resolves the caller's view state. It never fails: any problem
// with the token or the provider yields the login screen.
func (s *SessionService) Current(ctx context.Context, token string) session.State {
	state := session.LoggedOut()
	if strings.TrimSpace(token) == "" {
		return state
	}

	principal, err := s.parser.Parse(token)
	if err != nil {
		return session.Transition(state, session.Event{Type: session.EventSessionExpired})
	}

	user, err := s.cache.Get(ctx, principal.UserID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", principal.UserID).Msg("read cached user failed")
	}
	fresh := user == nil
	if fresh {
		user, err = s.provider.GetUser(ctx, principal.Token)
		if err != nil {
			s.log.Info().Err(err).Str("user_id", principal.UserID).Msg("session lookup failed")
			return session.Transition(state, session.Event{Type: session.EventSessionExpired})
		}
	}

	// The token role is the one authorization uses.
	if principal.Role != "" && user.Role != principal.Role {
		user.Role = principal.Role
		fresh = true
	}
	if fresh {
		if err := s.cache.Set(ctx, *user); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("cache user failed")
		}
	}

	return session.Transition(state, session.Event{Type: session.EventSessionRestored, User: user})
}

func validateCredentials(email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	return email, nil
}

package session

import "github.com/nurpe/aifa-contracts/internal/model"

type Screen string

const (
	ScreenLogin     Screen = "LOGIN"
	ScreenDashboard Screen = "DASHBOARD"
)

type EventType string

const (
	EventSignedIn        EventType = "SIGNED_IN"
	EventSignedOut       EventType = "SIGNED_OUT"
	EventSessionRestored EventType = "SESSION_RESTORED"
	EventSessionExpired  EventType = "SESSION_EXPIRED"
)

// State is the application view state: which top-level screen is shown and
// for whom. The zero value is the login screen.
type State struct {
	Screen Screen      `json:"screen"`
	User   *model.User `json:"user,omitempty"`
}

type Event struct {
	Type EventType
	User *model.User
}

func LoggedOut() State {
	return State{Screen: ScreenLogin}
}

// Transition returns the state that follows event. Sign-in events without
// a user are ignored.
func Transition(current State, event Event) State {
	switch event.Type {
	case EventSignedIn, EventSessionRestored:
		if event.User == nil {
			return normalize(current)
		}
		user := *event.User
		return State{Screen: ScreenDashboard, User: &user}
	case EventSignedOut, EventSessionExpired:
		return LoggedOut()
	default:
		return normalize(current)
	}
}

func normalize(s State) State {
	if s.Screen == "" || s.User == nil {
		return LoggedOut()
	}
	return s
}

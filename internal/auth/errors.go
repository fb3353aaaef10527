package auth

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindConfig             ErrorKind = "CONFIG"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindEmailNotConfirmed  ErrorKind = "EMAIL_NOT_CONFIRMED"
	KindAlreadyRegistered  ErrorKind = "ALREADY_REGISTERED"
	KindSessionExpired     ErrorKind = "SESSION_EXPIRED"
	KindUnavailable        ErrorKind = "UNAVAILABLE"
	KindUnknown            ErrorKind = "UNKNOWN"
)

// Error is a hosted-auth failure with a user-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
	Detail  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth %s: %s", strings.ToLower(string(e.Kind)), e.Detail)
}

var messages = map[ErrorKind]string{
	KindConfig:             "Configuración inválida: verifique la URL y la clave pública del servicio de autenticación.",
	KindInvalidCredentials: "Credenciales inválidas. Intente nuevamente.",
	KindEmailNotConfirmed:  "Debe confirmar su correo electrónico antes de iniciar sesión.",
	KindAlreadyRegistered:  "Este correo ya está registrado. Inicie sesión.",
	KindSessionExpired:     "Su sesión expiró. Inicie sesión nuevamente.",
	KindUnavailable:        "No se pudo contactar el servicio de autenticación. Intente más tarde.",
	KindUnknown:            "No se pudo completar la operación. Intente más tarde.",
}

// Classify maps a provider error message onto a kind by matching the text
// the provider is known to send.
func Classify(detail string) *Error {
	lower := strings.ToLower(detail)

	kind := KindUnknown
	switch {
	case strings.Contains(lower, "invalid api key"),
		strings.Contains(lower, "no api key"),
		strings.Contains(lower, "apikey"):
		kind = KindConfig
	case strings.Contains(lower, "invalid login credentials"),
		strings.Contains(lower, "invalid_credentials"),
		strings.Contains(lower, "invalid_grant"):
		kind = KindInvalidCredentials
	case strings.Contains(lower, "email not confirmed"):
		kind = KindEmailNotConfirmed
	case strings.Contains(lower, "already registered"),
		strings.Contains(lower, "already been registered"),
		strings.Contains(lower, "user_already_exists"):
		kind = KindAlreadyRegistered
	case strings.Contains(lower, "jwt expired"),
		strings.Contains(lower, "token is expired"),
		strings.Contains(lower, "invalid jwt"),
		strings.Contains(lower, "session_not_found"):
		kind = KindSessionExpired
	}

	return &Error{Kind: kind, Message: messages[kind], Detail: detail}
}

func unavailable(err error) *Error {
	return &Error{Kind: KindUnavailable, Message: messages[KindUnavailable], Detail: err.Error()}
}

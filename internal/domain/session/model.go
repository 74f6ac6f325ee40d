package session

import "strings"

// CredentialKind distinguishes the server-issued bearer token from the
// legacy reversible basic credential some deployments still return.
type CredentialKind string

const (
	KindNone   CredentialKind = "none"
	KindBearer CredentialKind = "bearer"
	KindBasic  CredentialKind = "basic"
)

// Session is the explicit credential handed to the gateway on every call.
// "No credential" is a first-class state, never an empty string in disguise.
type Session struct {
	Kind    CredentialKind
	Token   string
	LoginID string
}

func None() Session {
	return Session{Kind: KindNone}
}

func Bearer(loginID, token string) Session {
	token = strings.TrimSpace(token)
	if token == "" {
		return None()
	}
	return Session{Kind: KindBearer, Token: token, LoginID: strings.TrimSpace(loginID)}
}

// LegacyBasic wraps an opaque basic credential issued before the backend
// moved to bearer tokens. Callers should treat it as deprecated.
func LegacyBasic(loginID, token string) Session {
	token = strings.TrimSpace(token)
	if token == "" {
		return None()
	}
	return Session{Kind: KindBasic, Token: token, LoginID: strings.TrimSpace(loginID)}
}

func (s Session) Authenticated() bool {
	return s.Kind == KindBearer || s.Kind == KindBasic
}

// AuthorizationHeader renders the credential for the wire. The second return
// is false when the session carries no credential.
func (s Session) AuthorizationHeader() (string, bool) {
	switch s.Kind {
	case KindBearer:
		return "Bearer " + s.Token, true
	case KindBasic:
		return "Basic " + s.Token, true
	default:
		return "", false
	}
}

// Package session provides the user identity and bearer credential that
// gate remote persistence. Verification is the server's job; locally a
// session is just a credential that has not been signed out.
package session

import (
	"os"
	"strings"
	"sync"
)

// Session is an opaque identity plus its bearer credential.
type Session struct {
	UserID string
	Token  string
}

// Source yields the active session, if any. A missing session means guest
// mode: remote save/load never engages.
type Source interface {
	Current() (Session, bool)
	SignOut()
}

// TokenSource reads the credential once from configuration: a literal token
// or a token file. SignOut clears it for the rest of the process.
type TokenSource struct {
	mu        sync.Mutex
	session   Session
	signedOut bool
}

// FromConfig builds a source from the configured token or token file. Both
// empty yields a permanent guest source.
func FromConfig(token, tokenFile, userID string) *TokenSource {
	s := &TokenSource{}
	if token == "" && tokenFile != "" {
		if data, err := os.ReadFile(tokenFile); err == nil {
			token = strings.TrimSpace(string(data))
		}
	}
	s.session = Session{UserID: userID, Token: token}
	return s
}

func (s *TokenSource) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signedOut || s.session.Token == "" {
		return Session{}, false
	}
	return s.session, true
}

// SignOut drops the credential. Used for explicit sign-out and for the
// global session-expired path.
func (s *TokenSource) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signedOut = true
	s.session = Session{}
}

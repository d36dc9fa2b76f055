package model

import "time"

type Session struct {
	UID            string
	AuthValid      bool
	AuthExpiration time.Time
}

// Authenticated reports whether the session holds a live login.
func (s *Session) Authenticated() bool {
	return s.AuthValid && time.Now().Before(s.AuthExpiration)
}

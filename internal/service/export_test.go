package service

import "time"

// SetNow overrides the AuthService clock so tests can push tokens past
// their expiry without sleeping.
func SetNow(s *AuthService, now func() time.Time) {
	s.now = now
}

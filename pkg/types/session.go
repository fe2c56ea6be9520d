package types

import "time"

// Session is the per-browser authentication state.
type Session struct {
	Authenticated bool
	Username      string
	LoginTime     time.Time
}

package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"charitydash/internal"
	"charitydash/pkg/types"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

// SessionManager keeps session state in files under the session directory;
// the browser only holds a signed, encrypted session id.
type SessionManager struct {
	logger     *logrus.Logger
	store      *sessions.FilesystemStore
	dir        string
	cookieName string
	maxAge     time.Duration
	now        func() time.Time
}

func NewSessionManager(config *types.Config, logger *logrus.Logger) (*SessionManager, error) {
	hashKey, blockKey, err := cookieKeys(config, logger)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(config.SessionDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}

	store := sessions.NewFilesystemStore(config.SessionDir, hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(config.SessionMaxAgeSec)

	return &SessionManager{
		logger:     logger,
		store:      store,
		dir:        config.SessionDir,
		cookieName: config.SessionCookieName,
		maxAge:     time.Duration(config.SessionMaxAgeSec) * time.Second,
		now:        time.Now,
	}, nil
}

func cookieKeys(config *types.Config, logger *logrus.Logger) ([]byte, []byte, error) {
	if config.CookieHashKey == "" || config.CookieBlockKey == "" {
		if !config.IsDevelopment() {
			return nil, nil, fmt.Errorf("set COOKIE_HASH_KEY and COOKIE_BLOCK_KEY")
		}

		logger.Warn("cookie keys not configured, generating random keys; sessions will not survive a restart")
		return securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32), nil
	}

	hashKey, err := base64.StdEncoding.DecodeString(config.CookieHashKey)
	if err != nil {
		return nil, nil, fmt.Errorf("decode COOKIE_HASH_KEY: %w", err)
	}

	blockKey, err := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if err != nil {
		return nil, nil, fmt.Errorf("decode COOKIE_BLOCK_KEY: %w", err)
	}

	switch len(blockKey) {
	case 16, 24, 32:
	default:
		return nil, nil, fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes, got %d", len(blockKey))
	}

	return hashKey, blockKey, nil
}

// Load returns the request's session state. A missing, undecodable or expired
// session is anonymous.
func (m *SessionManager) Load(r *http.Request) types.Session {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		m.logger.WithError(err).Debug("discarding unreadable session")
		return types.Session{}
	}

	authenticated, _ := session.Values[internal.SESSION_KEY_AUTHENTICATED].(bool)
	if !authenticated {
		return types.Session{}
	}

	username, _ := session.Values[internal.SESSION_KEY_USERNAME].(string)
	loginUnix, _ := session.Values[internal.SESSION_KEY_LOGIN_TIME].(int64)
	loginTime := time.Unix(loginUnix, 0)

	if m.now().Sub(loginTime) > m.maxAge {
		return types.Session{}
	}

	return types.Session{
		Authenticated: true,
		Username:      username,
		LoginTime:     loginTime,
	}
}

// Login starts a fresh authenticated session for username. The previous
// session file, if any, is erased and expired files are pruned.
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, username string) error {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		m.logger.WithError(err).Debug("replacing unreadable session on login")
	}

	if !session.IsNew && session.ID != "" {
		m.removeSessionFile(session.ID)
	}
	m.pruneExpired()

	// a new id on every login so a planted session id never becomes authenticated
	session.ID = ""
	session.IsNew = true
	session.Values = map[any]any{
		internal.SESSION_KEY_AUTHENTICATED: true,
		internal.SESSION_KEY_USERNAME:      username,
		internal.SESSION_KEY_LOGIN_TIME:    m.now().Unix(),
	}

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Logout deletes the session file and expires the cookie.
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, m.cookieName)
	if err != nil {
		m.logger.WithError(err).Debug("logging out unreadable session")
	}

	session.Options.MaxAge = -1
	session.Values = map[any]any{}

	if session.IsNew {
		// nothing on disk to erase
		http.SetCookie(w, sessions.NewCookie(m.cookieName, "", session.Options))
		return nil
	}

	if err := session.Save(r, w); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.SetCookie(w, sessions.NewCookie(m.cookieName, "", session.Options))
			return nil
		}
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	return nil
}

// FilesystemStore keeps each session in <dir>/session_<id>.
const sessionFilePrefix = "session_"

func (m *SessionManager) removeSessionFile(id string) {
	err := os.Remove(filepath.Join(m.dir, sessionFilePrefix+id))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		m.logger.WithError(err).Warn("failed to remove rotated session file")
	}
}

// pruneExpired removes session files last written longer than the max age
// ago. A session file is only written at login, so its mtime is the login
// time and such a file can no longer authenticate anyone.
func (m *SessionManager) pruneExpired() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		m.logger.WithError(err).Warn("failed to list session dir")
		return
	}

	now := m.now()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), sessionFilePrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(info.ModTime()) <= m.maxAge {
			continue
		}

		path := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			m.logger.WithError(err).WithField("file", entry.Name()).Warn("failed to prune expired session")
		}
	}
}

type sessionContextKey struct{}

func contextWithSession(ctx context.Context, session types.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// sessionFromContext returns the session loaded by LoadSession, or an
// anonymous one.
func sessionFromContext(ctx context.Context) types.Session {
	session, _ := ctx.Value(sessionContextKey{}).(types.Session)
	return session
}

package server

import (
	"net/http"
	"strings"
	"time"

	"charitydash/internal"
	"charitydash/pkg/types"
)

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())
	if session.Authenticated {
		s.logger.WithField("username", session.Username).Debug("user is already logged in, redirecting to dashboard")
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: "Login"},
		Message:      r.URL.Query().Get("message"),
		Error:        r.URL.Query().Get("error"),
	}

	if err := s.renderTemplate(w, r, http.StatusOK, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		s.logger.WithError(err).Warn("failed to parse login form")
		s.redirectLoginWithError(w, r, "missing_fields")
		return
	}

	var login types.LoginForm
	if err := decoder.Decode(&login, r.PostForm); err != nil {
		s.logger.WithError(err).Warn("failed to decode login form")
		s.redirectLoginWithError(w, r, "missing_fields")
		return
	}

	if login.Username == "" || login.Password == "" {
		s.redirectLoginWithError(w, r, "missing_fields")
		return
	}

	if !s.verifier.Verify(ctx, login.Username, login.Password) {
		s.logger.WithField("username", login.Username).Warn("failed login attempt")
		s.redirectLoginWithError(w, r, "invalid_credentials")
		return
	}

	if err := s.sessions.Login(w, r, login.Username); err != nil {
		s.logger.WithError(err).Error("failed to start session")
		s.redirectLoginWithError(w, r, "server_error")
		return
	}

	s.logger.WithField("username", login.Username).Info("user logged in")

	// Check to see if this login attempt was the result of an unauthed redirect
	redirectCookie, err := r.Cookie(internal.COOKIE_REDIRECT_NAME)
	if err == nil {
		s.clearRedirectCookie(w)
		if isDashboardPath(redirectCookie.Value) {
			http.Redirect(w, r, redirectCookie.Value, http.StatusSeeOther)
			return
		}
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	session := sessionFromContext(r.Context())

	if err := s.sessions.Logout(w, r); err != nil {
		// the cookie is expired regardless, so the user still ends up logged out
		s.logger.WithError(err).Error("failed to destroy session")
	}

	if session.Authenticated {
		s.logger.WithField("username", session.Username).Info("user logged out")
	}

	redirectWithMarker(w, r, "/login", "message", "logged_out")
}

// isDashboardPath keeps the post-login redirect on this site.
func isDashboardPath(path string) bool {
	return (path == "/dashboard" || strings.HasPrefix(path, "/dashboard/")) && !strings.Contains(path, "//")
}

func (s *Service) setRedirectCookie(w http.ResponseWriter, path string, age time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REDIRECT_NAME,
		Value:    path,
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(age.Seconds()),
	})
}

func (s *Service) clearRedirectCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_REDIRECT_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

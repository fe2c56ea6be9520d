package internal

const (
	COOKIE_REDIRECT_NAME = "charitydash_redirect"

	SESSION_KEY_AUTHENTICATED = "authenticated"
	SESSION_KEY_USERNAME      = "username"
	SESSION_KEY_LOGIN_TIME    = "login_time"
)

package auth

import (
	"context"
	"crypto/subtle"

	"github.com/sirupsen/logrus"
)

type Verifier struct {
	logger      *logrus.Logger
	credentials CredentialProvider
}

func NewVerifier(logger *logrus.Logger, credentials CredentialProvider) *Verifier {
	return &Verifier{logger: logger, credentials: credentials}
}

// Verify reports whether username and password match the stored credential
// exactly. A bcrypt password_hash takes precedence over a plain password.
func (v *Verifier) Verify(ctx context.Context, username, password string) bool {
	credential, err := v.credentials.Credential(ctx)
	if err != nil {
		v.logger.WithError(err).Error("failed to load credential")
		return false
	}

	if subtle.ConstantTimeCompare([]byte(username), []byte(credential.Username)) != 1 {
		return false
	}

	if credential.PasswordHash != "" {
		if err := ComparePassword(password, credential.PasswordHash); err != nil {
			return false
		}
		return true
	}

	if credential.Password == "" {
		v.logger.Warn("credential has neither password nor password_hash")
		return false
	}

	v.logger.Debug("verifying against plain text password, run hash-password to upgrade login.json")

	return subtle.ConstantTimeCompare([]byte(password), []byte(credential.Password)) == 1
}

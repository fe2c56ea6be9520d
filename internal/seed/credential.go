package seed

import (
	"errors"
	"fmt"
	"os"

	"charitydash/internal/auth"
	"charitydash/pkg/types"
)

// SeedCredential writes login.json with a bcrypt hash of password unless a
// credential file already exists. force overwrites it. It reports whether the
// file was written.
func SeedCredential(provider *auth.FileCredentialProvider, username, password string, force bool) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("username and password are required")
	}

	if !force {
		_, err := os.Stat(provider.Path())
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return false, fmt.Errorf("failed to check credential file: %w", err)
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	err = provider.WriteCredential(&types.Credential{
		Username:     username,
		PasswordHash: hash,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charitydash/pkg/types"

	json "github.com/goccy/go-json"
)

const credentialFileName = "login.json"

var ErrCredentialUnavailable = errors.New("credential unavailable")

// CredentialProvider yields the single operator credential.
type CredentialProvider interface {
	Credential(ctx context.Context) (*types.Credential, error)
}

// FileCredentialProvider reads login.json on every call, so edits to the file
// apply to the next login without a restart.
type FileCredentialProvider struct {
	path string
}

func NewFileCredentialProvider(dataDir string) *FileCredentialProvider {
	return &FileCredentialProvider{path: filepath.Join(dataDir, credentialFileName)}
}

func (p *FileCredentialProvider) Path() string {
	return p.path
}

func (p *FileCredentialProvider) Credential(ctx context.Context) (*types.Credential, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrCredentialUnavailable, p.path, err)
	}

	var credential = new(types.Credential)
	if err := json.Unmarshal(data, credential); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrCredentialUnavailable, p.path, err)
	}

	if strings.TrimSpace(credential.Username) == "" {
		return nil, fmt.Errorf("%w: %s has no username", ErrCredentialUnavailable, p.path)
	}

	return credential, nil
}

// WriteCredential stores credential as login.json, replacing any existing file.
func (p *FileCredentialProvider) WriteCredential(credential *types.Credential) error {
	data, err := json.MarshalIndent(credential, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	return os.WriteFile(p.path, data, 0o600)
}

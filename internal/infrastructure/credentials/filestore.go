package credentials

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the token in a single file. Pointed at the user's
// runtime directory it acts as the ephemeral scope: runtime directories
// are wiped when the login session ends.
type FileStore struct {
	path string
}

// NewEphemeralFileStore places the token file under XDG_RUNTIME_DIR,
// falling back to the system temp directory.
func NewEphemeralFileStore() *FileStore {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return NewFileStore(filepath.Join(dir, "transferdesk", "token"))
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return string(data), nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

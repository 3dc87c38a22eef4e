package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/hrfx/internal/models"
	"github.com/desertthunder/hrfx/internal/shared"
	"gopkg.in/yaml.v3"
)

// Source loads session records for the export engine.
type Source interface {
	// Load reads and decodes the session record at path.
	Load(ctx context.Context, path string) (*models.Session, error)
}

// FileSource implements Source for local JSON and YAML session files.
type FileSource struct{}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a new FileSource.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Load reads the session record at path, decoding by file extension.
func (s *FileSource) Load(ctx context.Context, path string) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", shared.ErrSessionNotFound, path)
		}
		return nil, fmt.Errorf("failed to read session record %s: %w", path, err)
	}

	var session models.Session
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &session); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", shared.ErrInvalidSession, path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &session); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", shared.ErrInvalidSession, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported session format %q", shared.ErrInvalidSession, ext)
	}

	if session.Name == "" {
		session.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &session, nil
}

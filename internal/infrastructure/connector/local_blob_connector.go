package connector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"
	"github.com/MGTheTrain/web3-invoicing/internal/domain/users"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/config"
	"github.com/MGTheTrain/web3-invoicing/internal/pkg/logger"
)

// localBlobConnector keeps blobs as files below a root directory.
type localBlobConnector struct {
	root   string
	logger logger.Logger
}

// NewLocalBlobConnector creates the root directory and returns a filesystem backed users.BlobConnector.
func NewLocalBlobConnector(settings *config.BlobConnectorSettings, logger logger.Logger) (users.BlobConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(settings.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve local path: %w", err)
	}
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("failed to create local path %s: %w", root, err)
	}

	return &localBlobConnector{
		root:   root,
		logger: logger,
	}, nil
}

// resolve maps a blob name to a path below root and rejects names escaping it.
func (c *localBlobConnector) resolve(name string) (string, error) {
	path := filepath.Join(c.root, filepath.FromSlash(name))
	if path == c.root || !strings.HasPrefix(path, c.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: invalid blob name %q", apperr.ErrValidation, name)
	}
	return path, nil
}

func (c *localBlobConnector) Upload(_ context.Context, name string, content []byte, _ string) error {
	path, err := c.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	// write then rename so readers never see a partial file
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, content, 0600); err != nil {
		return fmt.Errorf("failed to write blob '%s': %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to store blob '%s': %w", name, err)
	}

	c.logger.Info("Uploaded blob", "name", name, "size", len(content))
	return nil
}

func (c *localBlobConnector) Download(_ context.Context, name string) ([]byte, error) {
	path, err := c.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob '%s': %w", name, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read blob '%s': %w", name, err)
	}
	return data, nil
}

func (c *localBlobConnector) Delete(_ context.Context, name string) error {
	path, err := c.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete blob '%s': %w", name, err)
	}

	c.logger.Info("Deleted blob", "name", name)
	return nil
}

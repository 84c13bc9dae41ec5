package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tavo0132/nexo-backend-api/pkg/clock"
)

// Local writes uploads to disk under root, served back as /uploads/...
type Local struct {
	root  string
	clock clock.Clock
}

func NewLocal(root string, clk clock.Clock) *Local {
	return &Local{root: root, clock: clk}
}

func (l *Local) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	key := objectKey(filename, l.clock.Now())

	fullPath := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return "/uploads/" + key, nil
}

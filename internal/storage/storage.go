package storage

//go:generate mockgen -destination=../mocks/mock_file_storage.go -package=mocks github.com/tavo0132/nexo-backend-api/internal/storage FileStorage

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
)

// FileStorage persists an uploaded blob and returns the relative path it is
// reachable under.
type FileStorage interface {
	Save(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

// objectKey produces a unique {yyyy}/{mm}/{uuid}{ext} key, keeping the
// original file's extension.
func objectKey(filename string, at time.Time) string {
	ext := path.Ext(filename)
	return fmt.Sprintf("%s/%s/%s%s", at.Format("2006"), at.Format("01"), uuid.NewString(), ext)
}

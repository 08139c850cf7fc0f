package catalog

import (
	"context"

	"manhwahub/pkg/models"
)

// Store is the record store behind the catalog. The SQLite Repo is the
// production implementation; intake and reader depend on this interface.
type Store interface {
	ListTitles(ctx context.Context) ([]models.Title, error)
	GetTitleByID(ctx context.Context, id string) (*models.Title, error)
	ListChaptersByTitle(ctx context.Context, titleID string) ([]models.Chapter, error)
	GetChapterByID(ctx context.Context, id string) (*models.Chapter, error)
	InsertTitle(ctx context.Context, fields models.TitleFields) (*models.Title, error)
	InsertChapters(ctx context.Context, fields []models.ChapterFields) ([]models.Chapter, error)
}

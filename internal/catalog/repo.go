package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"manhwahub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) ListTitles(ctx context.Context) ([]models.Title, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, author, description, cover_url, genres, status, rating, created_at, updated_at
		FROM manhwa
		ORDER BY created_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, &StoreError{Op: "list titles", Err: err}
	}
	defer rows.Close()

	var out []models.Title
	for rows.Next() {
		t, err := scanTitle(rows.Scan)
		if err != nil {
			return nil, &StoreError{Op: "scan title", Err: err}
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list titles rows", Err: err}
	}
	return out, nil
}

func (r *Repo) GetTitleByID(ctx context.Context, id string) (*models.Title, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, author, description, cover_url, genres, status, rating, created_at, updated_at
		FROM manhwa
		WHERE id = ?
	`, id)

	t, err := scanTitle(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get title", Err: err}
	}
	return &t, nil
}

func (r *Repo) ListChaptersByTitle(ctx context.Context, titleID string) ([]models.Chapter, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title_id, title, chapter_number, pages, publish_date, created_at, updated_at
		FROM chapters
		WHERE title_id = ?
		ORDER BY chapter_number ASC
	`, titleID)
	if err != nil {
		return nil, &StoreError{Op: "list chapters", Err: err}
	}
	defer rows.Close()

	var out []models.Chapter
	for rows.Next() {
		ch, err := scanChapter(rows.Scan)
		if err != nil {
			return nil, &StoreError{Op: "scan chapter", Err: err}
		}
		out = append(out, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list chapters rows", Err: err}
	}
	return out, nil
}

func (r *Repo) GetChapterByID(ctx context.Context, id string) (*models.Chapter, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title_id, title, chapter_number, pages, publish_date, created_at, updated_at
		FROM chapters
		WHERE id = ?
	`, id)

	ch, err := scanChapter(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get chapter", Err: err}
	}
	return &ch, nil
}

// InsertTitle assigns the ID and timestamps. Rating bounds and genre
// uniqueness are enforced here; name/author emptiness is the intake
// builder's job.
func (r *Repo) InsertTitle(ctx context.Context, fields models.TitleFields) (*models.Title, error) {
	if fields.Rating < 0 || fields.Rating > 5 {
		return nil, &ValidationError{Field: "rating", Reason: "must be between 0 and 5"}
	}
	status := fields.Status
	if status == "" {
		status = models.StatusOngoing
	}
	if status != models.StatusOngoing && status != models.StatusCompleted {
		return nil, &ValidationError{Field: "status", Reason: "must be ongoing or completed"}
	}

	genres := dedupeGenres(fields.Genres)
	genresJSON, err := json.Marshal(genres)
	if err != nil {
		return nil, &StoreError{Op: "marshal genres", Err: err}
	}

	now := time.Now().UTC()
	t := models.Title{
		ID:          uuid.NewString(),
		Name:        fields.Name,
		Author:      fields.Author,
		Description: fields.Description,
		CoverURL:    fields.CoverURL,
		Genres:      genres,
		Status:      status,
		Rating:      fields.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO manhwa (id, name, author, description, cover_url, genres, status, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Author, t.Description, t.CoverURL, string(genresJSON), t.Status, t.Rating, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return nil, &StoreError{Op: "insert title", Err: err}
	}
	return &t, nil
}

// InsertChapters writes the whole batch in one transaction. Each chapter
// gets a fresh ID and timestamps.
func (r *Repo) InsertChapters(ctx context.Context, fields []models.ChapterFields) ([]models.Chapter, error) {
	for _, f := range fields {
		if strings.TrimSpace(f.TitleID) == "" {
			return nil, &ValidationError{Field: "title_id", Reason: "required"}
		}
		if f.Number < 1 {
			return nil, &ValidationError{Field: "number", Reason: "must be a positive integer"}
		}
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, &StoreError{Op: "begin insert chapters", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chapters (id, title_id, title, chapter_number, pages, publish_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, &StoreError{Op: "prepare insert chapters", Err: err}
	}
	defer stmt.Close()

	now := time.Now().UTC()
	out := make([]models.Chapter, 0, len(fields))
	for _, f := range fields {
		pages := f.Pages
		if pages == nil {
			pages = []string{}
		}
		pagesJSON, err := json.Marshal(pages)
		if err != nil {
			return nil, &StoreError{Op: "marshal pages", Err: err}
		}

		ch := models.Chapter{
			ID:          uuid.NewString(),
			TitleID:     f.TitleID,
			Title:       f.Title,
			Number:      f.Number,
			Pages:       pages,
			PublishDate: f.PublishDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if _, err := stmt.ExecContext(ctx, ch.ID, ch.TitleID, ch.Title, ch.Number, string(pagesJSON), ch.PublishDate, ch.CreatedAt, ch.UpdatedAt); err != nil {
			return nil, &StoreError{Op: "insert chapter", Err: err}
		}
		out = append(out, ch)
	}

	if err := tx.Commit(); err != nil {
		return nil, &StoreError{Op: "commit insert chapters", Err: err}
	}
	return out, nil
}

func scanTitle(scan func(dest ...any) error) (models.Title, error) {
	var (
		t           models.Title
		description sql.NullString
		coverURL    sql.NullString
		genresJSON  string
	)
	if err := scan(
		&t.ID, &t.Name, &t.Author, &description, &coverURL, &genresJSON,
		&t.Status, &t.Rating, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return models.Title{}, err
	}
	t.Description = description.String
	t.CoverURL = coverURL.String
	_ = json.Unmarshal([]byte(genresJSON), &t.Genres)
	if t.Genres == nil {
		t.Genres = []string{}
	}
	return t, nil
}

func scanChapter(scan func(dest ...any) error) (models.Chapter, error) {
	var (
		ch          models.Chapter
		pagesJSON   string
		publishDate sql.NullString
	)
	if err := scan(
		&ch.ID, &ch.TitleID, &ch.Title, &ch.Number, &pagesJSON,
		&publishDate, &ch.CreatedAt, &ch.UpdatedAt,
	); err != nil {
		return models.Chapter{}, err
	}
	ch.PublishDate = publishDate.String
	_ = json.Unmarshal([]byte(pagesJSON), &ch.Pages)
	if ch.Pages == nil {
		ch.Pages = []string{}
	}
	return ch, nil
}

// dedupeGenres keeps first occurrences, exact case-sensitive match.
func dedupeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

package reader

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manhwahub/internal/catalog"
	"manhwahub/pkg/models"
)

type fakeStore struct {
	titles   []models.Title
	chapters []models.Chapter
}

func (f *fakeStore) ListTitles(ctx context.Context) ([]models.Title, error) {
	return f.titles, nil
}

func (f *fakeStore) GetTitleByID(ctx context.Context, id string) (*models.Title, error) {
	for i := range f.titles {
		if f.titles[i].ID == id {
			return &f.titles[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeStore) ListChaptersByTitle(ctx context.Context, titleID string) ([]models.Chapter, error) {
	var out []models.Chapter
	for _, ch := range f.chapters {
		if ch.TitleID == titleID {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeStore) GetChapterByID(ctx context.Context, id string) (*models.Chapter, error) {
	for i := range f.chapters {
		if f.chapters[i].ID == id {
			return &f.chapters[i], nil
		}
	}
	return nil, catalog.ErrNotFound
}

func (f *fakeStore) InsertTitle(ctx context.Context, fields models.TitleFields) (*models.Title, error) {
	panic("not used")
}

func (f *fakeStore) InsertChapters(ctx context.Context, fields []models.ChapterFields) ([]models.Chapter, error) {
	panic("not used")
}

type readView struct {
	PageIndex     int    `json:"page_index"`
	PageCount     int    `json:"page_count"`
	Page          string `json:"page"`
	Message       string `json:"message"`
	HasNextPage   bool   `json:"has_next_page"`
	HasPrevPage   bool   `json:"has_prev_page"`
	Complete      bool   `json:"complete"`
	Empty         bool   `json:"empty"`
	NextChapterID string `json:"next_chapter_id"`
	PrevChapterID string `json:"prev_chapter_id"`
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(store)
	h.RegisterRoutes(router.Group("/manhwa"))
	return router
}

func readerFixture() *fakeStore {
	return &fakeStore{
		titles: []models.Title{{ID: "t1", Name: "Shadow Realm Chronicles"}},
		chapters: []models.Chapter{
			{ID: "ch1", TitleID: "t1", Number: 1, Pages: []string{"p1", "p2"}},
			{ID: "ch2", TitleID: "t1", Number: 2, Pages: []string{"p1"}},
			{ID: "ch3", TitleID: "t1", Number: 3, Pages: []string{"p1", "p2", "p3"}},
			{ID: "ch5", TitleID: "t1", Number: 5, Pages: []string{"p1"}},
			{ID: "ch0", TitleID: "t1", Number: 7, Pages: []string{}},
		},
	}
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestReadDefaultsToFirstPage(t *testing.T) {
	router := newTestRouter(readerFixture())

	w := get(router, "/manhwa/t1/chapters/ch3")
	require.Equal(t, http.StatusOK, w.Code)

	var view readView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 0, view.PageIndex)
	assert.Equal(t, 3, view.PageCount)
	assert.Equal(t, "p1", view.Page)
	assert.True(t, view.HasNextPage)
	assert.False(t, view.HasPrevPage)
	assert.False(t, view.Complete)
}

func TestReadGapAdjacency(t *testing.T) {
	router := newTestRouter(readerFixture())

	w := get(router, "/manhwa/t1/chapters/ch3")
	require.Equal(t, http.StatusOK, w.Code)

	var view readView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, "ch2", view.PrevChapterID)
	assert.Empty(t, view.NextChapterID) // 4 is missing, 5 is not offered
}

func TestReadPageClampsToLast(t *testing.T) {
	router := newTestRouter(readerFixture())

	w := get(router, "/manhwa/t1/chapters/ch3?page=99")
	require.Equal(t, http.StatusOK, w.Code)

	var view readView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2, view.PageIndex)
	assert.Equal(t, "p3", view.Page)
	assert.True(t, view.Complete)
	assert.False(t, view.HasNextPage)
}

func TestReadEmptyChapterIsTerminalState(t *testing.T) {
	router := newTestRouter(readerFixture())

	w := get(router, "/manhwa/t1/chapters/ch0?page=3")
	require.Equal(t, http.StatusOK, w.Code)

	var view readView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.Empty)
	assert.False(t, view.Complete)
	assert.Equal(t, 0, view.PageCount)
	assert.Equal(t, "no pages available", view.Message)
	assert.False(t, view.HasNextPage)
	assert.False(t, view.HasPrevPage)
}

func TestReadUnknownChapterIs404(t *testing.T) {
	router := newTestRouter(readerFixture())
	w := get(router, "/manhwa/t1/chapters/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadChapterOfOtherTitleIs404(t *testing.T) {
	store := readerFixture()
	store.titles = append(store.titles, models.Title{ID: "t2", Name: "Other"})
	router := newTestRouter(store)

	w := get(router, "/manhwa/t2/chapters/ch3")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

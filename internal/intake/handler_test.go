package intake

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(store, nil)
	h.RegisterRoutes(router.Group("/manhwa"))
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/manhwa", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePersistsTitleAndChapters(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store)

	w := postJSON(router, `{
		"name": "Shadow Realm",
		"author": "Kim Hana",
		"rating": 4.8,
		"genres": ["Fantasy", "Action", "Fantasy"],
		"chapters": [
			{"title": "The Awakening", "pages": ["p1.jpg", "p2.jpg"]},
			{"title": "", "pages": []}
		]
	}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Title struct {
			ID     string   `json:"id"`
			Name   string   `json:"name"`
			Genres []string `json:"genres"`
		} `json:"title"`
		Chapters []struct {
			TitleID string `json:"title_id"`
			Title   string `json:"title"`
			Number  int    `json:"number"`
		} `json:"chapters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Shadow Realm", resp.Title.Name)
	assert.Equal(t, []string{"Fantasy", "Action"}, resp.Title.Genres) // duplicate dropped

	require.Len(t, resp.Chapters, 2)
	assert.Equal(t, resp.Title.ID, resp.Chapters[0].TitleID)
	assert.Equal(t, 1, resp.Chapters[0].Number)
	assert.Equal(t, 2, resp.Chapters[1].Number)
	assert.Equal(t, "The Awakening", resp.Chapters[0].Title)
	assert.Equal(t, "Chapter 2", resp.Chapters[1].Title)

	assert.Len(t, store.titles, 1)
	assert.Len(t, store.chapters, 2)
}

func TestCreateMissingAuthorIsBadRequest(t *testing.T) {
	store := &fakeStore{}
	router := newTestRouter(store)

	w := postJSON(router, `{"name": "Shadow Realm", "author": "   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.titles)
}

func TestCreateInvalidJSONIsBadRequest(t *testing.T) {
	router := newTestRouter(&fakeStore{})
	w := postJSON(router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateChapterFailureReportsPartialState(t *testing.T) {
	store := &fakeStore{failChapters: true}
	router := newTestRouter(store)

	w := postJSON(router, `{
		"name": "Shadow Realm",
		"author": "Kim Hana",
		"chapters": [{"title": "The Awakening"}]
	}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error   string `json:"error"`
		TitleID string `json:"title_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "chapters failed", resp.Error)
	assert.NotEmpty(t, resp.TitleID) // title row stayed behind

	assert.Len(t, store.titles, 1)
	assert.Empty(t, store.chapters)
}

func TestCreateTitleFailure(t *testing.T) {
	store := &fakeStore{failTitle: true}
	router := newTestRouter(store)

	w := postJSON(router, `{"name": "Shadow Realm", "author": "Kim Hana"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.titles)
}

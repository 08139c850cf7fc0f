package intake

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"manhwahub/internal/catalog"
	"manhwahub/internal/events"
)

type Handler struct {
	Store catalog.Store
	Hub   *events.Hub
}

func NewHandler(store catalog.Store, hub *events.Hub) *Handler {
	return &Handler{Store: store, Hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.create) // POST /manhwa
}

type chapterReq struct {
	Title       string   `json:"title"`
	Number      int      `json:"number"`
	Pages       []string `json:"pages"`
	PublishDate string   `json:"publish_date"`
}

type createReq struct {
	Name        string       `json:"name"`
	Author      string       `json:"author"`
	Description string       `json:"description"`
	CoverURL    string       `json:"cover_url"`
	Status      string       `json:"status"`
	Rating      float64      `json:"rating"`
	Genres      []string     `json:"genres"`
	Chapters    []chapterReq `json:"chapters"`
}

// create drives a fresh Builder through the draft operations and submits
// it. One request is one intake session; nothing survives it.
func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	b := NewBuilder(h.Store)
	b.SetName(req.Name)
	b.SetAuthor(req.Author)
	b.SetDescription(req.Description)
	b.SetCoverURL(req.CoverURL)
	if req.Status != "" {
		b.SetStatus(req.Status)
	}
	b.SetRating(req.Rating)
	for _, g := range req.Genres {
		b.AddGenre(g)
	}
	for i, ch := range req.Chapters {
		b.AddChapter()
		b.SetChapterTitle(i, ch.Title)
		if ch.Number > 0 {
			b.SetChapterNumber(i, ch.Number)
		}
		b.SetChapterPublishDate(i, ch.PublishDate)
		for _, p := range ch.Pages {
			b.AddPage(i, p)
		}
	}

	title, chapters, err := b.Submit(c.Request.Context())

	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	case err != nil && title != nil:
		// Chapters failed after the title row was written. The title stays;
		// report the partial state instead of pretending it rolled back.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":    "chapters failed",
			"title_id": title.ID,
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := events.CatalogEvent{
			Type:      events.TypeTitleCreated,
			TitleID:   title.ID,
			TitleName: title.Name,
			Chapters:  len(chapters),
			At:        time.Now().UTC(),
		}
		go h.Hub.BroadcastJSON(ev)
	}

	c.JSON(http.StatusCreated, gin.H{
		"title":    title,
		"chapters": chapters,
	})
}

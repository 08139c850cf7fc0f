package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"manhwahub/internal/catalog"
	"manhwahub/pkg/database"
	"manhwahub/pkg/models"
)

type seedChapter struct {
	title       string
	number      int
	pages       []string
	publishDate string
}

type seedTitle struct {
	fields   models.TitleFields
	chapters []seedChapter
}

var samples = []seedTitle{
	{
		fields: models.TitleFields{
			Name:        "Shadow Realm Chronicles",
			Author:      "Kim Hana",
			Description: "A young warrior discovers mysterious powers that connect him to an ancient shadow realm. As dark forces threaten both worlds, he must master his abilities to save everything he holds dear.",
			CoverURL:    "assets/manhwa-1.jpg",
			Genres:      []string{"Fantasy", "Action", "Supernatural"},
			Status:      models.StatusOngoing,
			Rating:      4.8,
		},
		chapters: []seedChapter{
			{title: "The Awakening", number: 1, pages: []string{"assets/manhwa-1.jpg"}, publishDate: "2024-01-15"},
			{title: "First Steps", number: 2, pages: []string{"assets/manhwa-1.jpg"}, publishDate: "2024-01-22"},
			{title: "Dark Secrets", number: 3, pages: []string{"assets/manhwa-1.jpg"}, publishDate: "2024-01-29"},
		},
	},
	{
		fields: models.TitleFields{
			Name:        "Neon Assassin",
			Author:      "Park Jinho",
			Description: "In a cyberpunk future, a skilled assassin navigates the neon-lit streets while uncovering a conspiracy that threatens the entire city. Technology and martial arts collide in this thrilling adventure.",
			CoverURL:    "assets/manhwa-2.jpg",
			Genres:      []string{"Cyberpunk", "Action", "Thriller"},
			Status:      models.StatusOngoing,
			Rating:      4.7,
		},
		chapters: []seedChapter{
			{title: "Night Hunter", number: 1, pages: []string{"assets/manhwa-2.jpg"}, publishDate: "2024-02-01"},
			{title: "Corporate Secrets", number: 2, pages: []string{"assets/manhwa-2.jpg"}, publishDate: "2024-02-08"},
		},
	},
	{
		fields: models.TitleFields{
			Name:        "Elemental Academy",
			Author:      "Lee Minseo",
			Description: "A prestigious magical academy trains young mages to master the elements. Follow the journey of a talented student as they navigate friendships, rivalries, and ancient mysteries.",
			CoverURL:    "assets/manhwa-3.jpg",
			Genres:      []string{"Magic", "School", "Adventure"},
			Status:      models.StatusCompleted,
			Rating:      4.9,
		},
		chapters: []seedChapter{
			{title: "Welcome to Academy", number: 1, pages: []string{"assets/manhwa-3.jpg"}, publishDate: "2024-01-10"},
			{title: "Fire and Ice", number: 2, pages: []string{"assets/manhwa-3.jpg"}, publishDate: "2024-01-17"},
			{title: "The Final Test", number: 3, pages: []string{"assets/manhwa-3.jpg"}, publishDate: "2024-01-24"},
		},
	},
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := catalog.NewRepo(db)

	for _, s := range samples {
		title, err := repo.InsertTitle(ctx, s.fields)
		if err != nil {
			log.Fatalf("seed title %q failed: %v", s.fields.Name, err)
		}

		fields := make([]models.ChapterFields, 0, len(s.chapters))
		for _, ch := range s.chapters {
			fields = append(fields, models.ChapterFields{
				TitleID:     title.ID,
				Title:       ch.title,
				Number:      ch.number,
				Pages:       ch.pages,
				PublishDate: ch.publishDate,
			})
		}
		if _, err := repo.InsertChapters(ctx, fields); err != nil {
			log.Fatalf("seed chapters for %q failed: %v", s.fields.Name, err)
		}

		log.Printf("seeded %q with %d chapters", title.Name, len(s.chapters))
	}
}

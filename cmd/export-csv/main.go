package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"manhwahub/internal/catalog"
	"manhwahub/pkg/database"
	"manhwahub/pkg/models"
)

// Dumps the catalog into the same CSV shape cmd/import-csv consumes.
func main() {
	var (
		titlesOut   = flag.String("titles", "data/titles.csv", "output CSV path for titles")
		chaptersOut = flag.String("chapters", "data/chapters.csv", "output CSV path for chapters")
	)
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	repo := catalog.NewRepo(db)

	titles, err := repo.ListTitles(ctx)
	if err != nil {
		log.Fatalf("list titles failed: %v", err)
	}

	if err := writeTitles(*titlesOut, titles); err != nil {
		log.Fatalf("write titles failed: %v", err)
	}

	n, err := writeChapters(ctx, repo, *chaptersOut, titles)
	if err != nil {
		log.Fatalf("write chapters failed: %v", err)
	}

	log.Printf("exported %d titles and %d chapters", len(titles), n)
}

func writeTitles(path string, titles []models.Title) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"name", "author", "description", "cover_url", "genres", "status", "rating"}); err != nil {
		return err
	}
	for _, t := range titles {
		rec := []string{
			t.Name,
			t.Author,
			t.Description,
			t.CoverURL,
			strings.Join(t.Genres, "|"),
			t.Status,
			strconv.FormatFloat(t.Rating, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeChapters(ctx context.Context, repo *catalog.Repo, path string, titles []models.Title) (int, error) {
	f, err := create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"title_name", "title", "number", "pages", "publish_date"}); err != nil {
		return 0, err
	}

	total := 0
	for _, t := range titles {
		chapters, err := repo.ListChaptersByTitle(ctx, t.ID)
		if err != nil {
			return total, err
		}
		for _, ch := range chapters {
			rec := []string{
				t.Name,
				ch.Title,
				strconv.Itoa(ch.Number),
				strings.Join(ch.Pages, "|"),
				ch.PublishDate,
			}
			if err := w.Write(rec); err != nil {
				return total, err
			}
			total++
		}
	}
	w.Flush()
	return total, w.Error()
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return os.Create(path)
}

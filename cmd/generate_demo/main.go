// Command generate_demo creates a demo catalog with sample public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db] [-covers path/to/covers]
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"bookshelf/internal/catalog"
	"bookshelf/internal/covers"
	"bookshelf/internal/database"
)

const (
	defaultDemoDatabasePath = "./demo/demo.db"
	defaultDemoCoversDir    = "./demo/covers"
)

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	coversDir := flag.String("covers", defaultDemoCoversDir, "path to the demo covers directory")
	flag.Parse()

	log.Printf("Generating demo catalog at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create demo directory: %v", err)
	}

	db, err := database.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	store, err := covers.NewStore(*coversDir)
	if err != nil {
		log.Fatalf("Failed to create cover store: %v", err)
	}

	service := catalog.NewService(db, store, nil)

	for _, in := range demoBooks() {
		id, err := service.SaveBook(nil, in)
		if err != nil {
			log.Printf("Failed to save %q: %v", in.Title, err)
			continue
		}
		log.Printf("Saved: %s by %s %s (id %d)", in.Title, in.AuthorGivenName, in.AuthorSurname, id)
	}

	log.Println("Demo catalog generated successfully!")
}

func demoBooks() []catalog.BookInput {
	year := func(y int) *int { return &y }
	pages := func(p int) *int { return &p }

	return []catalog.BookInput{
		{
			Title:           "Pride and Prejudice",
			AuthorGivenName: "Jane",
			AuthorSurname:   "Austen",
			PublisherName:   "T. Egerton",
			PublisherCity:   "London",
			Year:            year(1813),
			PageCount:       pages(432),
			Description:     "A novel of manners following Elizabeth Bennet.",
			Genres:          []string{"Fiction", "Romance", "Classic"},
		},
		{
			Title:           "Emma",
			AuthorGivenName: "Jane",
			AuthorSurname:   "Austen",
			PublisherName:   "John Murray",
			PublisherCity:   "London",
			Year:            year(1815),
			PageCount:       pages(474),
			Genres:          []string{"Fiction", "Classic"},
		},
		{
			Title:           "Moby-Dick",
			AuthorGivenName: "Herman",
			AuthorSurname:   "Melville",
			PublisherName:   "Harper & Brothers",
			PublisherCity:   "New York",
			Year:            year(1851),
			PageCount:       pages(635),
			Description:     "The voyage of the whaling ship Pequod.",
			Genres:          []string{"Fiction", "Adventure", "Classic"},
		},
		{
			Title:         "The Art of War",
			AuthorSurname: "Sun Tzu",
			Year:          year(1910),
			PageCount:     pages(273),
			Genres:        []string{"Philosophy", "Strategy"},
		},
		{
			Title:           "Walden",
			AuthorGivenName: "Henry David",
			AuthorSurname:   "Thoreau",
			PublisherName:   "Ticknor and Fields",
			PublisherCity:   "Boston",
			Year:            year(1854),
			PageCount:       pages(352),
			Description:     "Reflections on simple living in natural surroundings.",
			Genres:          []string{"Philosophy", "Memoir"},
		},
	}
}

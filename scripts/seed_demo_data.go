//go:build ignore
// +build ignore

// Seeds a local database with one artist and a batch of fake industry
// contacts so the send flow can be exercised end to end.
//
//	DATABASE_URL=postgres://... go run scripts/seed_demo_data.go -contacts 200 -user demo-user
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/repository/postgres"
	"github.com/boostify/outreach/internal/service/contact"
)

var industries = []string{
	"Record Label", "Music Publishing", "Sync Licensing", "Artist Management",
	"Booking Agency", "Music PR", "Streaming", "Radio Broadcasting", "Music Distribution",
}

func main() {
	n := flag.Int("contacts", 100, "number of fake contacts")
	userID := flag.String("user", "demo-user", "owner of the seeded artist")
	seed := flag.Int64("seed", 0, "faker seed (0 = random)")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	artistID := uuid.New().String()
	_, err = db.ExecContext(ctx, `
		INSERT INTO artists (id, user_id, name, slug, biography, genres, country)
		VALUES ($1, $2, 'Luna Vega', 'luna-vega',
		        'Madrid-born singer blending flamenco guitar with modern pop production.',
		        $3, 'Spain')
		ON CONFLICT DO NOTHING
	`, artistID, *userID, pq.Array([]string{"Latin Pop", "Flamenco"}))
	if err != nil {
		log.Fatalf("insert artist: %v", err)
	}
	fmt.Printf("   ✓ Artist: Luna Vega (ID: %s, owner %s)\n", artistID, *userID)

	faker := gofakeit.New(*seed)
	svc := contact.NewService(postgres.NewContactRepo(db))
	var created, dup int
	for i := 0; i < *n; i++ {
		p := faker.Person()
		company := faker.Company()
		_, err := svc.Create(ctx, &domain.Contact{
			Email:          strings.ToLower(fmt.Sprintf("%s.%s@%s", p.FirstName, p.LastName, faker.DomainName())),
			FullName:       p.FirstName + " " + p.LastName,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			Title:          faker.JobTitle(),
			CompanyName:    company,
			Industry:       industries[faker.Number(0, len(industries)-1)],
			SeniorityLevel: faker.RandomString([]string{"Director", "Manager", "VP", "Owner"}),
			City:           p.Address.City,
			Country:        faker.Country(),
			Phone:          p.Contact.Phone,
			Source:         "seed",
		})
		switch {
		case errors.Is(err, contact.ErrDuplicateEmail):
			dup++
		case err != nil:
			log.Fatalf("create contact %d: %v", i, err)
		default:
			created++
		}
	}
	fmt.Printf("   ✓ Contacts: %d created, %d duplicates skipped\n", created, dup)
}

package alerts

import (
	"context"
	"database/sql"
	"time"

	"birdwatch-backend/services/alerts/db"

	_ "modernc.org/sqlite"
)

// Store appends run metadata to a local sqlite file. It only ever
// records the envelope's metadata block, never individual sightings, so
// runs stay independent of each other.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

func (s Store) RecordRun(ctx context.Context, result Result) error {
	scrapedAt, err := time.Parse(time.RFC3339, result.Metadata.LastUpdated)
	if err != nil {
		return err
	}

	errMessage := ""
	if result.Metadata.ErrorMessage != nil {
		errMessage = *result.Metadata.ErrorMessage
	}

	return s.qry.RecordRun(ctx, db.RecordRunParams{
		ScrapedAt:      scrapedAt.Unix(),
		Status:         result.Metadata.ScrapeStatus,
		TotalSightings: int64(result.Metadata.TotalSightings),
		ErrorMessage:   errMessage,
	})
}

func (s Store) History(ctx context.Context) ([]db.ScrapeRun, error) {
	return s.qry.ListRuns(ctx)
}

package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type ScrapeRun struct {
	ID             int64
	ScrapedAt      int64
	Status         string
	TotalSightings int64
	ErrorMessage   string
}

const recordRun = `
INSERT INTO scrape_run (scraped_at, status, total_sightings, error_message)
VALUES (?, ?, ?, ?)
`

type RecordRunParams struct {
	ScrapedAt      int64
	Status         string
	TotalSightings int64
	ErrorMessage   string
}

func (q *Queries) RecordRun(ctx context.Context, arg RecordRunParams) error {
	_, err := q.db.ExecContext(
		ctx, recordRun,
		arg.ScrapedAt, arg.Status, arg.TotalSightings, arg.ErrorMessage,
	)
	return err
}

const listRuns = `
SELECT id, scraped_at, status, total_sightings, error_message
FROM scrape_run
ORDER BY scraped_at DESC, id DESC
`

func (q *Queries) ListRuns(ctx context.Context) ([]ScrapeRun, error) {
	rows, err := q.db.QueryContext(ctx, listRuns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScrapeRun
	for rows.Next() {
		var run ScrapeRun
		err := rows.Scan(
			&run.ID,
			&run.ScrapedAt,
			&run.Status,
			&run.TotalSightings,
			&run.ErrorMessage,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

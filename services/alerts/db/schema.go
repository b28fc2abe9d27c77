// Package db holds the run-history schema and its queries.
package db

const Schema = `
CREATE TABLE IF NOT EXISTS scrape_run (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scraped_at INTEGER NOT NULL,
	status TEXT NOT NULL,
	total_sightings INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_scrape_run_scraped_at ON scrape_run (scraped_at);
`

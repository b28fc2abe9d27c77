package alerts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"birdwatch-backend/lib/scrapers/ebird"
)

const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

type Metadata struct {
	LocationCode   string  `json:"location_code"`
	LocationName   string  `json:"location_name"`
	LastUpdated    string  `json:"last_updated"`
	ScrapeStatus   string  `json:"scrape_status"`
	TotalSightings int     `json:"total_sightings"`
	ErrorMessage   *string `json:"error_message"`
}

// Result is the run envelope. It is built once per run, serialized
// immediately and never mutated afterward.
type Result struct {
	Metadata  Metadata         `json:"metadata"`
	Sightings []ebird.Sighting `json:"sightings"`
}

// BuildResult wraps one run's sightings and outcome into the envelope.
// The metadata block is always present, even for empty runs, and the
// sightings list always serializes as an array.
func BuildResult(cfg Config, sightings []ebird.Sighting, status, errMessage string, now time.Time) Result {
	if sightings == nil {
		sightings = []ebird.Sighting{}
	}
	var errField *string
	if errMessage != "" {
		errField = &errMessage
	}

	return Result{
		Metadata: Metadata{
			LocationCode:   cfg.LocationCode,
			LocationName:   cfg.LocationName,
			LastUpdated:    now.UTC().Format(time.RFC3339),
			ScrapeStatus:   status,
			TotalSightings: len(sightings),
			ErrorMessage:   errField,
		},
		Sightings: sightings,
	}
}

func WriteResult(path string, result Result) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

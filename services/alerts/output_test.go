package alerts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"birdwatch-backend/lib/scrapers/ebird"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestBuildResultIdempotentModuloTimestamp(t *testing.T) {
	cfg := DefaultConfig()
	sightings := []ebird.Sighting{
		{Id: "abc123def456", SpeciesCommonName: "Snowy Owl", Location: "Ocean Beach", Date: "12 Jan 2026"},
	}

	first := BuildResult(cfg, sightings, StatusSuccess, "", time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC))
	second := BuildResult(cfg, sightings, StatusSuccess, "", time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC))

	diff := cmp.Diff(first, second, cmpopts.IgnoreFields(Metadata{}, "LastUpdated"))
	require.Empty(t, diff)
	require.NotEqual(t, first.Metadata.LastUpdated, second.Metadata.LastUpdated)
}

func TestBuildResultEmptyRun(t *testing.T) {
	result := BuildResult(DefaultConfig(), nil, StatusWarning, "No sightings found", time.Now())

	require.Equal(t, StatusWarning, result.Metadata.ScrapeStatus)
	require.Equal(t, 0, result.Metadata.TotalSightings)
	require.NotNil(t, result.Metadata.ErrorMessage)
	require.Equal(t, "No sightings found", *result.Metadata.ErrorMessage)
	require.NotNil(t, result.Sightings)
	require.Empty(t, result.Sightings)
}

func TestWriteResultShape(t *testing.T) {
	cfg := DefaultConfig()
	path := filepath.Join(t.TempDir(), "data", "birds.json")

	now := time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC)
	result := BuildResult(cfg, nil, StatusWarning, "No sightings found", now)
	require.NoError(t, WriteResult(path, result))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// an empty run still serializes the sightings list as an array
	require.True(t, strings.Contains(string(raw), `"sightings": []`))
	require.True(t, strings.Contains(string(raw), `"last_updated": "2026-01-12T08:00:00Z"`))

	var decoded Result
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, result, decoded)
}

func TestWriteResultNullErrorMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birds.json")
	result := BuildResult(DefaultConfig(), []ebird.Sighting{}, StatusSuccess, "", time.Now())
	require.NoError(t, WriteResult(path, result))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(raw), `"error_message": null`))
}

package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"birdwatch-backend/lib/scrapers/ebird"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("birdwatch.services.alerts")

var ErrMissingCredentials = fmt.Errorf("EBIRD_USERNAME and EBIRD_PASSWORD must be set")

type Config struct {
	AlertUrl     string `json:"alert_url"`
	LocationCode string `json:"location_code"`
	LocationName string `json:"location_name"`
	OutputFile   string `json:"output_file"`
	DebugDir     string `json:"debug_dir"`
	HistoryDb    string `json:"history_db"`
}

func DefaultConfig() Config {
	return Config{
		AlertUrl:     "https://ebird.org/alert/summary?sid=SN35466",
		LocationCode: "SN35466",
		LocationName: "eBird Alert Location",
		OutputFile:   filepath.Join("data", "birds.json"),
		DebugDir:     "debug",
	}
}

type Credentials struct {
	Username string
	Password string
}

// CredentialsFromEnv reads the two secrets the run requires. Both must
// be non-empty or the run aborts before any network activity.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		Username: os.Getenv("EBIRD_USERNAME"),
		Password: os.Getenv("EBIRD_PASSWORD"),
	}
	if creds.Username == "" || creds.Password == "" {
		return Credentials{}, ErrMissingCredentials
	}
	return creds, nil
}

// RetryPolicy bounds the fetch attempts of a run. The delay between
// failed attempts is fixed, not backed off.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Delay: time.Second * 5}

type ServiceOptions struct {
	// zero value falls back to DefaultRetryPolicy
	Retry RetryPolicy
	// nil falls back to the real clock
	Clock clockwork.Clock
	// optional run-history sink
	Store *Store
}

type Service struct {
	client *ebird.Client
	cfg    Config
	retry  RetryPolicy
	clock  clockwork.Clock
	store  *Store
}

func NewService(client *ebird.Client, cfg Config, opts ServiceOptions) Service {
	retry := opts.Retry
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return Service{
		client: client,
		cfg:    cfg,
		retry:  retry,
		clock:  clock,
		store:  opts.Store,
	}
}

// Run performs one end-to-end scrape and leaves the output file in
// exactly one of the three envelope states. The only case producing no
// file at all is the missing-credentials configuration fault.
func (s Service) Run(ctx context.Context, creds Credentials) (Result, error) {
	ctx, span := tracer.Start(ctx, "service:Run")
	defer span.End()

	if creds.Username == "" || creds.Password == "" {
		span.SetStatus(codes.Error, "missing credentials")
		return Result{}, ErrMissingCredentials
	}

	alerts, err := s.scrapeWithRetry(ctx, creds)
	now := s.clock.Now()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")

		result := BuildResult(s.cfg, nil, StatusError, err.Error(), now)
		writeErr := WriteResult(s.cfg.OutputFile, result)
		if writeErr != nil {
			slog.ErrorContext(ctx, "failed to write error envelope", "err", writeErr)
		}
		s.recordRun(ctx, result)
		return result, err
	}

	if !alerts.Found {
		s.writeSnapshot(ctx, alerts.Snapshot)
	}

	status := StatusSuccess
	message := ""
	if len(alerts.Sightings) == 0 {
		status = StatusWarning
		message = "No sightings found"
	}

	result := BuildResult(s.cfg, alerts.Sightings, status, message, now)
	err = WriteResult(s.cfg.OutputFile, result)
	if err != nil {
		span.RecordError(err)
		return result, err
	}
	s.recordRun(ctx, result)

	slog.InfoContext(
		ctx, "scrape complete",
		"status", status,
		"total", result.Metadata.TotalSightings,
		"output", s.cfg.OutputFile,
	)
	return result, nil
}

func (s Service) scrapeWithRetry(ctx context.Context, creds Credentials) (ebird.Alerts, error) {
	var lastErr error
	for attempt := 1; attempt <= s.retry.MaxAttempts; attempt++ {
		slog.InfoContext(ctx, "fetching alert page", "url", s.cfg.AlertUrl, "attempt", attempt)

		alerts, err := s.client.FetchAlerts(ctx, s.cfg.AlertUrl, creds.Username, creds.Password)
		if err == nil {
			return alerts, nil
		}

		slog.ErrorContext(ctx, "scrape attempt failed", "attempt", attempt, "err", err)
		lastErr = err
		if attempt < s.retry.MaxAttempts {
			s.clock.Sleep(s.retry.Delay)
		}
	}
	return ebird.Alerts{}, lastErr
}

// writeSnapshot dumps the fetched page body for offline inspection when
// no observation markers were found. Failures here are logged, never
// escalated, the snapshot is a diagnostic side artifact.
func (s Service) writeSnapshot(ctx context.Context, body []byte) {
	if s.cfg.DebugDir == "" || len(body) == 0 {
		return
	}
	err := os.MkdirAll(s.cfg.DebugDir, 0755)
	if err != nil {
		slog.WarnContext(ctx, "failed to create debug dir", "err", err)
		return
	}
	path := filepath.Join(s.cfg.DebugDir, "alert_page.html")
	err = os.WriteFile(path, body, 0644)
	if err != nil {
		slog.WarnContext(ctx, "failed to write page snapshot", "err", err)
		return
	}
	slog.InfoContext(ctx, "saved page snapshot", "path", path)
}

func (s Service) recordRun(ctx context.Context, result Result) {
	if s.store == nil {
		return
	}
	err := s.store.RecordRun(ctx, result)
	if err != nil {
		slog.WarnContext(ctx, "failed to record run history", "err", err)
	}
}

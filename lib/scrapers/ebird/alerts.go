package ebird

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

// Page is one fetched and parsed document plus the url it finally landed
// on after redirects.
type Page struct {
	Url  *url.URL
	Doc  *goquery.Document
	Body []byte
}

func (c *Client) fetchPage(ctx context.Context, link string) (*Page, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", link, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		return nil, err
	}

	finalUrl, err := url.Parse(link)
	if err != nil {
		return nil, err
	}
	if res.RawResponse != nil && res.RawResponse.Request != nil && res.RawResponse.Request.URL != nil {
		finalUrl = res.RawResponse.Request.URL
	}

	return &Page{Url: finalUrl, Doc: doc, Body: res.Body()}, nil
}

// Alerts is the outcome of one fetch attempt against the alert page.
type Alerts struct {
	Sightings []Sighting
	// Found is false when none of the observation markers appeared in
	// the page, a soft-empty outcome rather than a fault; Snapshot then
	// holds the fetched body for offline inspection.
	Found    bool
	Snapshot []byte
}

// FetchAlerts performs a single attempt: fetch the alert page, log in if
// the fetch got redirected to a login page (then fetch again), and
// extract every valid sighting in encounter order.
func (c *Client) FetchAlerts(ctx context.Context, alertUrl, username, password string) (Alerts, error) {
	ctx, span := tracer.Start(ctx, "client:FetchAlerts")
	defer span.End()

	page, err := c.fetchPage(ctx, alertUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch alert page")
		return Alerts{}, err
	}

	if IsLoginRedirect(page.Url) {
		slog.InfoContext(ctx, "redirected to login page", "url", page.Url.String())
		err = c.Login(ctx, page, username, password)
		if err != nil {
			span.SetStatus(codes.Error, "login failed")
			return Alerts{}, err
		}
		page, err = c.fetchPage(ctx, alertUrl)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch alert page after login")
			return Alerts{}, err
		}
	}

	cards := page.Doc.Find(strings.Join(cardSelectors, ", "))
	if len(cards.Nodes) == 0 {
		slog.WarnContext(ctx, "no observation markers found", "url", alertUrl)
		return Alerts{Found: false, Snapshot: page.Body}, nil
	}
	slog.InfoContext(ctx, "found observation cards", "count", len(cards.Nodes))

	var sightings []Sighting
	cards.Each(func(i int, card *goquery.Selection) {
		sighting, ok := ExtractSighting(card)
		if !ok {
			slog.WarnContext(ctx, "failed to extract sighting", "card", i)
			return
		}
		if !sighting.Valid() {
			slog.DebugContext(ctx, "dropping incomplete sighting", "card", i, "species", sighting.SpeciesCommonName)
			return
		}
		slog.DebugContext(
			ctx, "extracted sighting",
			"species", sighting.SpeciesCommonName,
			"location", sighting.Location,
		)
		sightings = append(sightings, sighting)
	})

	return Alerts{Sightings: sightings, Found: true}, nil
}

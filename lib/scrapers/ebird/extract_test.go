package ebird

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseCard(t *testing.T, fragment string) *goquery.Selection {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatal(err)
	}
	card := doc.Find(strings.Join(cardSelectors, ", ")).First()
	require.NotEmpty(t, card.Nodes, "fixture must contain an observation card")
	return card
}

func TestExtractSightingFullCard(t *testing.T) {
	card := parseCard(t, `<div class="Observation" data-lat="37.123" data-lng="-122.456">
		<h3 class="Heading-main">Snowy Owl</h3>
		<em>Bubo scandiacus</em>
		<div class="Observation-location">Ocean Beach</div>
		<div class="Observation-meta-date">12 Jan 2026</div>
		<span class="Observation-meta-user">Jane Smith</span>
		<span class="count">2</span>
		<span class="rare">Rare</span>
		<a href="/checklist/S123456789">checklist</a>
	</div>`)

	s, ok := ExtractSighting(card)
	require.True(t, ok)

	require.Equal(t, "Snowy Owl", s.SpeciesCommonName)
	require.Equal(t, "Bubo scandiacus", s.SpeciesScientificName)
	require.Equal(t, "Ocean Beach", s.Location)
	require.Equal(t, "12 Jan 2026", s.Date)
	require.Equal(t, "Jane Smith", s.Observer)
	require.Equal(t, "2", s.Count)
	require.Equal(t, "rare", s.RarityLevel)
	require.Equal(t, "https://ebird.org/checklist/S123456789", s.ChecklistUrl)

	require.NotNil(t, s.Latitude)
	require.NotNil(t, s.Longitude)
	require.InDelta(t, 37.123, *s.Latitude, 1e-9)
	require.InDelta(t, -122.456, *s.Longitude, 1e-9)

	require.Equal(t, sightingId("Snowy Owl", "Ocean Beach", "12 Jan 2026"), s.Id)
	require.True(t, s.Valid())
}

func TestExtractSightingSparseCardDefaults(t *testing.T) {
	card := parseCard(t, `<div class="sighting"><h3>Sora</h3></div>`)

	s, ok := ExtractSighting(card)
	require.True(t, ok)

	require.Equal(t, "Sora", s.SpeciesCommonName)
	require.Equal(t, "", s.SpeciesScientificName)
	require.Equal(t, Unknown, s.Location)
	require.Equal(t, "", s.Date)
	require.Equal(t, "", s.Time)
	require.Equal(t, Unknown, s.Observer)
	require.Equal(t, "1", s.Count)
	require.Equal(t, "notable", s.RarityLevel)
	require.Equal(t, "", s.ChecklistUrl)
	require.Nil(t, s.Latitude)
	require.Nil(t, s.Longitude)

	// location/date stayed at their sentinel defaults
	require.False(t, s.Valid())
}

func TestExtractSightingMapLinkCoordinates(t *testing.T) {
	card := parseCard(t, `<div class="observation">
		<h4>Vermilion Flycatcher</h4>
		<div class="location">Golden Gate Park</div>
		<span class="date">13 Jan 2026</span>
		<a href="https://maps.google.com/?q=37.769,-122.486">map</a>
	</div>`)

	s, ok := ExtractSighting(card)
	require.True(t, ok)
	require.NotNil(t, s.Latitude)
	require.NotNil(t, s.Longitude)
	require.InDelta(t, 37.769, *s.Latitude, 1e-9)
	require.InDelta(t, -122.486, *s.Longitude, 1e-9)
}

func TestExtractSightingNoCoordinateSource(t *testing.T) {
	card := parseCard(t, `<div class="observation">
		<h4>Sora</h4>
		<div class="location">Crissy Field</div>
		<span class="date">14 Jan 2026</span>
		<a href="https://www.google.com/maps/place/nowhere">map</a>
	</div>`)

	s, ok := ExtractSighting(card)
	require.True(t, ok)
	// never a default of (0, 0)
	require.Nil(t, s.Latitude)
	require.Nil(t, s.Longitude)
}

func TestExtractSightingMalformedCoordinateAttr(t *testing.T) {
	card := parseCard(t, `<div class="observation" data-lat="north" data-lng="west">
		<h4>Sora</h4>
	</div>`)

	_, ok := ExtractSighting(card)
	require.False(t, ok)
}

func TestExtractSightingAbsoluteChecklistUrlKept(t *testing.T) {
	card := parseCard(t, `<div class="observation">
		<h4>Sora</h4>
		<a href="https://ebird.org/checklist/S42">checklist</a>
	</div>`)

	s, ok := ExtractSighting(card)
	require.True(t, ok)
	require.Equal(t, "https://ebird.org/checklist/S42", s.ChecklistUrl)
}

func TestExtractSightingNilCard(t *testing.T) {
	_, ok := ExtractSighting(nil)
	require.False(t, ok)
}

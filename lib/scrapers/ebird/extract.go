package ebird

import (
	"strconv"
	"strings"

	"birdwatch-backend/lib/htmlutil"
	"birdwatch-backend/lib/maplink"

	"github.com/PuerkitoBio/goquery"
)

func extractField(card *goquery.Selection, f fieldSelectors) string {
	return htmlutil.FirstMatch(card, f.candidates, f.fallback)
}

// ExtractSighting pulls one candidate record out of a single observation
// card. A malformed card yields ok=false instead of an error: one bad
// card must never abort the batch, and the caller decides whether to log
// the skip.
func ExtractSighting(card *goquery.Selection) (Sighting, bool) {
	if card == nil || len(card.Nodes) == 0 {
		return Sighting{}, false
	}

	s := Sighting{
		SpeciesCommonName:     extractField(card, speciesCommonNameSelectors),
		SpeciesScientificName: extractField(card, speciesScientificNameSelectors),
		Location:              extractField(card, locationSelectors),
		Date:                  extractField(card, dateSelectors),
		Time:                  extractField(card, timeSelectors),
		Observer:              extractField(card, observerSelectors),
		Count:                 extractField(card, countSelectors),
		RarityLevel:           strings.ToLower(extractField(card, rarityLevelSelectors)),
	}

	href, ok := card.Find(checklistLinkSelector).First().Attr("href")
	if ok && href != "" {
		if !strings.HasPrefix(href, "http") {
			href = Origin + href
		}
		s.ChecklistUrl = href
	}

	if !resolveCoordinates(card, &s) {
		return Sighting{}, false
	}

	s.Id = sightingId(s.SpeciesCommonName, s.Location, s.Date)
	return s, true
}

// resolveCoordinates fills latitude/longitude from the card's data
// attributes, falling back to an embedded map link. Both stay nil when
// neither source yields a pair; an unparsable attribute marks the whole
// card as corrupt.
func resolveCoordinates(card *goquery.Selection, s *Sighting) bool {
	if latAttr := card.AttrOr("data-lat", ""); latAttr != "" {
		lat, err := strconv.ParseFloat(latAttr, 64)
		if err != nil {
			return false
		}
		s.Latitude = &lat
	}
	if lngAttr := card.AttrOr("data-lng", ""); lngAttr != "" {
		lng, err := strconv.ParseFloat(lngAttr, 64)
		if err != nil {
			return false
		}
		s.Longitude = &lng
	}

	if s.Latitude == nil {
		href, ok := card.Find(mapLinkSelector).First().Attr("href")
		if !ok {
			return true
		}
		coords, found := maplink.Parse(href)
		if found {
			s.Latitude = &coords.Lat
			s.Longitude = &coords.Lng
		}
	}

	return true
}

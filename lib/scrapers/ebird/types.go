package ebird

import (
	"crypto/md5"
	"encoding/hex"
)

// Unknown is both the default for species/location/observer fields and
// the value the validator treats as missing.
const Unknown = "Unknown"

type Sighting struct {
	Id                    string   `json:"id"`
	SpeciesCommonName     string   `json:"species_common_name"`
	SpeciesScientificName string   `json:"species_scientific_name"`
	Location              string   `json:"location"`
	Date                  string   `json:"date"`
	Time                  string   `json:"time"`
	Observer              string   `json:"observer"`
	Count                 string   `json:"count"`
	RarityLevel           string   `json:"rarity_level"`
	ChecklistUrl          string   `json:"checklist_url"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
}

// sightingId derives a deterministic short identifier: two extractions of
// the same logical sighting always collide.
func sightingId(commonName, location, date string) string {
	sum := md5.Sum([]byte(commonName + location + date))
	return hex.EncodeToString(sum[:])[:12]
}

// Valid reports whether a candidate sighting carries the minimum required
// fields. Observer sharing the Unknown default does not make it required.
// No date-format or geographic bounds checks happen here on purpose.
func (s Sighting) Valid() bool {
	for _, field := range []string{s.SpeciesCommonName, s.Location, s.Date} {
		if field == "" || field == Unknown {
			return false
		}
	}
	return true
}

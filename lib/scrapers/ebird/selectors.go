package ebird

// The alert page carries no stable markup contract, so every field is
// located through an ordered list of selector heuristics; the first
// candidate with a non-empty match wins, otherwise the field takes its
// documented default.

// observation cards double as the content markers that signal the alert
// list has rendered
var cardSelectors = []string{
	".Observation",
	".observation",
	".sighting",
	"[class*='bird-card']",
	"[class*='observation']",
}

type fieldSelectors struct {
	candidates []string
	fallback   string
}

var (
	speciesCommonNameSelectors = fieldSelectors{
		candidates: []string{".Heading-main", ".species-name", "h3", "h4"},
		fallback:   Unknown,
	}
	speciesScientificNameSelectors = fieldSelectors{
		candidates: []string{"em", ".scientific-name", ".species-scientific"},
		fallback:   "",
	}
	locationSelectors = fieldSelectors{
		candidates: []string{".Observation-location", ".location", "[class*='location']"},
		fallback:   Unknown,
	}
	dateSelectors = fieldSelectors{
		candidates: []string{".Observation-meta-date", ".date", "[class*='date']"},
		fallback:   "",
	}
	timeSelectors = fieldSelectors{
		candidates: []string{".time", "[class*='time']"},
		fallback:   "",
	}
	observerSelectors = fieldSelectors{
		candidates: []string{".Observation-meta-user", ".observer", "[class*='user']"},
		fallback:   Unknown,
	}
	countSelectors = fieldSelectors{
		candidates: []string{".count", "[class*='count']"},
		fallback:   "1",
	}
	rarityLevelSelectors = fieldSelectors{
		candidates: []string{".rare", ".notable", ".review", "[class*='rarity']"},
		fallback:   "notable",
	}
)

const (
	checklistLinkSelector = "a[href*='checklist']"
	mapLinkSelector       = "a[href*='google.com/maps'], a[href*='maps.google']"

	identityInputSelector = "input[type='text'], input[type='email']"
	passwordInputSelector = "input[type='password']"
	submitControlSelector = "button[type='submit'], input[type='submit']"
)

var loggedInMarkers = []string{"sign out", "logout", "account"}

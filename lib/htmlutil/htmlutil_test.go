package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestText(t *testing.T) {
	doc := parse(t, `<div class="card">
		<h3>  Snowy   Owl </h3>
		<em></em>
	</div>`)

	require.Equal(t, "Snowy Owl", Text(doc.Find("h3")))
	require.Equal(t, "", Text(doc.Find("em")))
	require.Equal(t, "", Text(doc.Find(".missing")))
	require.Equal(t, "", Text(nil))
}

func TestFirstMatch(t *testing.T) {
	doc := parse(t, `<div class="card">
		<span class="secondary">Backup Name</span>
		<h4>Actual Name</h4>
	</div>`)
	card := doc.Find("div.card")

	// earlier candidates win even when a later one also matches
	require.Equal(t, "Backup Name", FirstMatch(card, []string{".secondary", "h4"}, "Unknown"))
	require.Equal(t, "Actual Name", FirstMatch(card, []string{".primary", "h4"}, "Unknown"))
	require.Equal(t, "Unknown", FirstMatch(card, []string{".primary", "h5"}, "Unknown"))
}

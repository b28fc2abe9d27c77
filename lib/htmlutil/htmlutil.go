package htmlutil

import (
	"bytes"

	"birdwatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// Text returns the cleaned inner text of the first node in the selection,
// or "" when the selection is empty.
func Text(sel *goquery.Selection) string {
	if sel == nil || len(sel.Nodes) == 0 {
		return ""
	}
	return textutil.Clean(GetText(sel.Nodes[0]))
}

// FirstMatch tries each selector in order against the given fragment and
// returns the cleaned text of the first candidate yielding a non-empty
// match. The fallback is returned when no candidate matches.
func FirstMatch(fragment *goquery.Selection, candidates []string, fallback string) string {
	for _, selector := range candidates {
		text := Text(fragment.Find(selector).First())
		if text != "" {
			return text
		}
	}
	return fallback
}

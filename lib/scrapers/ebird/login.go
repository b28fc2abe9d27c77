package ebird

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"birdwatch-backend/lib/htmlutil"
	"birdwatch-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

var ErrLoginFailed = fmt.Errorf("failed to log in to ebird")

// IsLoginRedirect reports whether a fetch ended up on a login page rather
// than the requested one.
func IsLoginRedirect(u *url.URL) bool {
	link := strings.ToLower(u.String())
	return strings.Contains(link, "login") || strings.Contains(link, "signin")
}

// Login fills the credential form found on `page` and submits it. The
// login flow is best effort: the form is located through the same kind of
// selector heuristics as the alert cards, and any missing element fails
// the whole attempt. Retrying is the caller's responsibility.
func (c *Client) Login(ctx context.Context, page *Page, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	passwordInput := page.Doc.Find(passwordInputSelector).First()
	if len(passwordInput.Nodes) == 0 {
		span.SetStatus(codes.Error, "no password input")
		return fmt.Errorf("%w: could not find a password input", ErrLoginFailed)
	}
	form := passwordInput.Closest("form")
	if len(form.Nodes) == 0 {
		span.SetStatus(codes.Error, "password input outside a form")
		return fmt.Errorf("%w: password input is not part of a form", ErrLoginFailed)
	}
	identityInput := form.Find(identityInputSelector).First()
	if len(identityInput.Nodes) == 0 {
		span.SetStatus(codes.Error, "no identity input")
		return fmt.Errorf("%w: could not find a username or email input", ErrLoginFailed)
	}
	if len(form.Find(submitControlSelector).Nodes) == 0 {
		span.SetStatus(codes.Error, "no submit control")
		return fmt.Errorf("%w: could not find a submit control", ErrLoginFailed)
	}

	// hidden inputs (csrf tokens and friends) ride along unchanged
	fields := map[string]string{}
	form.Find("input[type='hidden']").Each(func(_ int, input *goquery.Selection) {
		name, ok := input.Attr("name")
		if !ok {
			return
		}
		fields[name] = input.AttrOr("value", "")
	})
	fields[identityInput.AttrOr("name", "username")] = username
	fields[passwordInput.AttrOr("name", "password")] = password

	target := page.Url
	if action := form.AttrOr("action", ""); action != "" {
		ref, err := url.Parse(action)
		if err != nil {
			span.SetStatus(codes.Error, "bad form action")
			return fmt.Errorf("%w: unparsable form action %q", ErrLoginFailed, action)
		}
		target = page.Url.ResolveReference(ref)
	}

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(fields).
		Post(target.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit login form")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "login submit rejected")
		return fmt.Errorf("%w: submit returned status %d", ErrLoginFailed, res.StatusCode())
	}

	slog.InfoContext(ctx, "login form submitted", "url", target.String())
	return nil
}

// IsLoggedIn looks for a post-login marker ("Sign Out" and friends) on a
// page. The scrape flow deliberately trusts the submitted form plus the
// follow-up fetch instead of calling this; it stays available as a
// diagnostic probe.
func IsLoggedIn(doc *goquery.Document) bool {
	found := false
	doc.Find("a, button, span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if textutil.MatchAny(htmlutil.Text(sel), loggedInMarkers) {
			found = true
			return false
		}
		return true
	})
	return found
}

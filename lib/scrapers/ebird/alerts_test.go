package ebird

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
)

const testAlertUrl = "https://ebird.org/alert/summary?sid=SN35466"

const alertPageHTML = `<html><body>
	<div class="Observation" data-lat="37.123" data-lng="-122.456">
		<h3 class="Heading-main">Snowy Owl</h3>
		<div class="Observation-location">Ocean Beach</div>
		<div class="Observation-meta-date">12 Jan 2026</div>
	</div>
	<div class="Observation">
		<h3 class="Heading-main">Painted Bunting</h3>
		<div class="Observation-meta-date">13 Jan 2026</div>
	</div>
	<div class="Observation">
		<h4>Vermilion Flycatcher</h4>
		<div class="location">Golden Gate Park</div>
		<span class="date">13 Jan 2026</span>
	</div>
</body></html>`

func TestFetchAlertsEncounterOrder(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(
		"GET", testAlertUrl,
		httpmock.NewStringResponder(200, alertPageHTML),
	)

	alerts, err := client.FetchAlerts(context.Background(), testAlertUrl, "user", "pass")
	require.NoError(t, err)
	require.True(t, alerts.Found)

	// the middle card has no location so only two survive, in page order
	require.Len(t, alerts.Sightings, 2)
	require.Equal(t, "Snowy Owl", alerts.Sightings[0].SpeciesCommonName)
	require.Equal(t, "Vermilion Flycatcher", alerts.Sightings[1].SpeciesCommonName)
}

func TestFetchAlertsSoftEmpty(t *testing.T) {
	client := newTestClient(t)

	body := `<html><body><p>Loading...</p></body></html>`
	httpmock.RegisterResponder(
		"GET", testAlertUrl,
		httpmock.NewStringResponder(200, body),
	)

	alerts, err := client.FetchAlerts(context.Background(), testAlertUrl, "user", "pass")
	require.NoError(t, err)
	require.False(t, alerts.Found)
	require.Empty(t, alerts.Sightings)
	require.Equal(t, body, string(alerts.Snapshot))
}

func TestFetchAlertsServerError(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder(
		"GET", testAlertUrl,
		httpmock.NewStringResponder(500, "boom"),
	)

	_, err := client.FetchAlerts(context.Background(), testAlertUrl, "user", "pass")
	require.Error(t, err)
}

func TestFetchAlertsLoginFlow(t *testing.T) {
	client := newTestClient(t)

	// anonymous fetch redirects to the login page, the fetch after login
	// succeeds
	redirect := httpmock.NewStringResponse(302, "")
	redirect.Header.Set("Location", "https://ebird.org/home/login?service=alerts")
	loaded := httpmock.NewStringResponse(200, alertPageHTML)
	loaded.Header.Set("Content-Type", "text/html")
	httpmock.RegisterResponder(
		"GET", testAlertUrl,
		httpmock.ResponderFromMultipleResponses([]*http.Response{redirect, loaded}),
	)
	httpmock.RegisterResponder(
		"GET", "https://ebird.org/home/login?service=alerts",
		httpmock.NewStringResponder(200, loginFormHTML),
	)
	httpmock.RegisterResponder(
		"POST", "https://ebird.org/login/cas",
		httpmock.NewStringResponder(200, "welcome"),
	)

	alerts, err := client.FetchAlerts(context.Background(), testAlertUrl, "birder@example.com", "hunter2")
	require.NoError(t, err)
	require.True(t, alerts.Found)
	require.Len(t, alerts.Sightings, 2)

	info := httpmock.GetCallCountInfo()
	require.Equal(t, 1, info["POST https://ebird.org/login/cas"])
	require.Equal(t, 2, info["GET "+testAlertUrl])
}

func TestFetchAlertsLoginFailureAbortsAttempt(t *testing.T) {
	client := newTestClient(t)

	redirect := httpmock.NewStringResponse(302, "")
	redirect.Header.Set("Location", "https://ebird.org/home/login?service=alerts")
	httpmock.RegisterResponder(
		"GET", testAlertUrl,
		httpmock.ResponderFromMultipleResponses([]*http.Response{redirect}),
	)
	// a login page without any form at all
	httpmock.RegisterResponder(
		"GET", "https://ebird.org/home/login?service=alerts",
		httpmock.NewStringResponder(200, "<html><body>down for maintenance</body></html>"),
	)

	_, err := client.FetchAlerts(context.Background(), testAlertUrl, "user", "pass")
	require.ErrorIs(t, err, ErrLoginFailed)
}

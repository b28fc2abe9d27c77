package ebird

import (
	"net/http/cookiejar"
	"time"

	"birdwatch-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const Origin = "https://ebird.org"

type Client struct {
	Http *resty.Client
}

type ClientOptions struct {
	// defaults to a desktop chrome user agent
	UserAgent string
	// defaults to 30 seconds
	Timeout time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	telemetry.InstrumentResty(client, "birdwatch.lib.scrapers.ebird.http")

	return &Client{Http: client}, nil
}

package tenderportal

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"tenderportal-backend/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// portal endpoints; the mix of routed and WebForms-era paths is the
// portal's own inconsistency, not ours
const (
	indexPath       = "/Default/Index"
	companyPath     = "/Default/Index"
	noticesPath     = "/Notice/Index"
	processingPath  = "/Notice/HandleRequest"
	detailsPath     = "/Notice/Details"
	attachmentsPath = "/Notice/Attachments"
	downloadPath    = "/Attachment/Download"
	logoPath        = "/Image"
	tendersPath     = "/Tender/InProgress"
	removePath      = "/Tender/Remove"
)

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
}

type ClientOptions struct {
	BaseUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	// redirects are the portal's success/failure channel, never follow them
	restyutil.DisableRedirects(client)
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		BaseUrl: baseUrl,
		Http:    client,
	}, nil
}

// expectOK maps a non-2xx response on a page that should have rendered to
// the session taxonomy: the portal answers stale or missing sessions with a
// redirect back to the login flow.
func expectOK(res *resty.Response, what string) error {
	if res.IsSuccess() {
		return nil
	}
	return fmt.Errorf("%w: failed to load %s (status %d)", ErrBadSession, what, res.StatusCode())
}

func document(res *resty.Response) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// queryParam pulls a single query parameter out of a raw href, returning ""
// when the href does not parse or the parameter is absent.
func queryParam(href, key string) string {
	link, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return link.Query().Get(key)
}

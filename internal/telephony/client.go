// Package telephony is a minimal client for the provider's 2010-04-01 REST
// API: placing calls, fetching call status, and listing and downloading call
// recordings.
package telephony

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the provider REST API root.
const DefaultBaseURL = "https://api.twilio.com"

const apiVersion = "2010-04-01"

// Client talks to the provider REST API with account-credential basic auth.
type Client struct {
	accountSID string
	authToken  string
	baseURL    string
	httpClient *http.Client
}

// Opts holds parameters for creating a Client. BaseURL and HTTPClient are
// overridable for tests.
type Opts struct {
	AccountSID string
	AuthToken  string
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a provider client.
func New(opts Opts) (*Client, error) {
	if opts.AccountSID == "" {
		return nil, fmt.Errorf("telephony: account SID is required")
	}
	if opts.AuthToken == "" {
		return nil, fmt.Errorf("telephony: auth token is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		accountSID: opts.AccountSID,
		authToken:  opts.AuthToken,
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
	}, nil
}

// Call is the provider's view of one call.
type Call struct {
	SID    string `json:"sid"`
	Status Status `json:"status"`
	To     string `json:"to"`
	From   string `json:"from"`
}

// Recording is one audio recording handle attached to a call.
type Recording struct {
	SID      string `json:"sid"`
	CallSID  string `json:"call_sid"`
	Duration string `json:"duration"` // seconds, as reported by the provider
	URI      string `json:"uri"`      // resource path ending in .json
}

// MediaURL returns the absolute URL of the recording's MP3 audio.
func (r Recording) MediaURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + strings.Replace(r.URI, ".json", ".mp3", 1)
}

// PlaceCallOpts carries the outbound call parameters.
type PlaceCallOpts struct {
	To             string
	From           string
	Twiml          string
	Record         bool
	TimeoutSeconds int // ring timeout before the provider gives up dialing
}

// PlaceCall initiates an outbound call carrying an inline voice-response
// document. Any transport or API error means no call reference was obtained
// and the whole call attempt is over.
func (c *Client) PlaceCall(ctx context.Context, opts PlaceCallOpts) (*Call, error) {
	form := url.Values{}
	form.Set("To", opts.To)
	form.Set("From", opts.From)
	form.Set("Twiml", opts.Twiml)
	if opts.Record {
		form.Set("Record", "true")
	}
	if opts.TimeoutSeconds > 0 {
		form.Set("Timeout", strconv.Itoa(opts.TimeoutSeconds))
	}

	var call Call
	if err := c.do(ctx, http.MethodPost, c.accountPath("Calls.json"), form, &call); err != nil {
		return nil, fmt.Errorf("telephony: place call: %w", err)
	}
	return &call, nil
}

// FetchCall returns the current state of a call by SID.
func (c *Client) FetchCall(ctx context.Context, callSID string) (*Call, error) {
	var call Call
	if err := c.do(ctx, http.MethodGet, c.accountPath("Calls/"+callSID+".json"), nil, &call); err != nil {
		return nil, fmt.Errorf("telephony: fetch call %s: %w", callSID, err)
	}
	return &call, nil
}

// ListRecordings returns the recordings attached to a call, in provider
// order. Zero recordings is a normal result, not an error.
func (c *Client) ListRecordings(ctx context.Context, callSID string) ([]Recording, error) {
	path := c.accountPath("Recordings.json") + "?CallSid=" + url.QueryEscape(callSID)
	var page struct {
		Recordings []Recording `json:"recordings"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, fmt.Errorf("telephony: list recordings for %s: %w", callSID, err)
	}
	return page.Recordings, nil
}

// DownloadRecording fetches the raw MP3 bytes of a recording via an
// authenticated GET against its media URI.
func (c *Client) DownloadRecording(ctx context.Context, rec Recording) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rec.MediaURL(c.baseURL), nil)
	if err != nil {
		return nil, fmt.Errorf("telephony: download %s: %w", rec.SID, err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("telephony: download %s: %w", rec.SID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telephony: download %s: status %d", rec.SID, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("telephony: download %s: read body: %w", rec.SID, err)
	}
	return data, nil
}

func (c *Client) accountPath(suffix string) string {
	return "/" + apiVersion + "/Accounts/" + c.accountSID + "/" + suffix
}

// do performs an authenticated API request and decodes the JSON response
// into out. 2xx statuses are success; everything else is an error carrying
// the provider's message when one is present.
func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

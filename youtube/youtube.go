// Package youtube is a minimal client for the YouTube Data API v3 search endpoint.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ytune-cli/ytune/constant"
	"github.com/ytune-cli/ytune/log"
	"github.com/ytune-cli/ytune/network"
	"github.com/ytune-cli/ytune/util"
)

// Client searches videos with an API key.
// Zero values of HTTPClient and Endpoint fall back to network.Client and the public endpoint.
type Client struct {
	Key        string
	HTTPClient *http.Client
	Endpoint   string
}

// New returns a client using the shared HTTP client.
func New(apiKey string) *Client {
	return &Client{Key: apiKey}
}

// Search returns up to constant.YouTubeMaxResults videos for q in the order the API ranked them.
//
// It fails with ErrMissingKey without touching the network when no key is set,
// with *RequestError on a non-2xx answer and with ErrNoResults on an empty one.
func (c *Client) Search(ctx context.Context, q string) ([]*Result, error) {
	if c.Key == "" {
		return nil, ErrMissingKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(q), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	log.WithField("query", q).Debug("youtube search")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var decoded searchResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if len(decoded.Items) == 0 {
		return nil, ErrNoResults
	}

	return decoded.results(), nil
}

func (c *Client) searchURL(q string) string {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = constant.YouTubeSearchEndpoint
	}

	params := url.Values{
		"part":       {"snippet"},
		"q":          {q},
		"type":       {constant.YouTubeContentType},
		"maxResults": {strconv.Itoa(constant.YouTubeMaxResults)},
		"key":        {c.Key},
	}

	return endpoint + "?" + params.Encode()
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return network.Client
}

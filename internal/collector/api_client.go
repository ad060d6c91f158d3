package collector

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

	"github.com/dghubble/oauth1"
	"golang.org/x/time/rate"

	"github.com/weberdc/refetch-tweets/internal/config"
	"github.com/weberdc/refetch-tweets/internal/domain"
)

const lookupURL = "https://api.twitter.com/1.1/statuses/lookup.json"

// APIClient performs authenticated bulk lookups against statuses/lookup.
type APIClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewAPIClient builds an OAuth1-signed client. The proxy, when configured,
// lives on this client's transport only.
func NewAPIClient(creds config.Credentials, proxy config.Proxy) *APIClient {
	oaConfig := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	ctx := context.Background()
	if proxy.Enabled() {
		base := &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(proxy.URL())}}
		ctx = context.WithValue(ctx, oauth1.HTTPClient, base)
	}
	httpClient := oaConfig.Client(ctx, token)
	httpClient.Timeout = 30 * time.Second

	return &APIClient{
		httpClient: httpClient,
		// Courtesy pacing underneath the header-driven limiter: lookup allows
		// 900 calls per 15-minute window, one per second stays inside it.
		limiter: rate.NewLimiter(rate.Every(1*time.Second), 1),
		baseURL: lookupURL,
	}
}

// Lookup fetches up to LookupBatchSize tweets in one call. Rate-limit headers
// are decoded into a status even when the call fails, so the caller can still
// honour them.
func (c *APIClient) Lookup(ctx context.Context, ids []domain.TweetID) ([]json.RawMessage, *domain.RateLimitStatus, error) {
	if len(ids) > domain.LookupBatchSize {
		return nil, nil, fmt.Errorf("batch of %d exceeds lookup maximum of %d", len(ids), domain.LookupBatchSize)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	form := url.Values{}
	form.Set("id", joinIDs(ids))
	form.Set("tweet_mode", "extended")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, nil, fmt.Errorf("build lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("lookup call: %w", err)
	}
	defer resp.Body.Close()

	status := parseRateLimit(resp.Header, time.Now())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, status, fmt.Errorf("lookup returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payloads []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payloads); err != nil {
		return nil, status, fmt.Errorf("decode lookup response: %w", err)
	}
	return payloads, status, nil
}

func joinIDs(ids []domain.TweetID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(int64(id), 10)
	}
	return strings.Join(parts, ",")
}

// parseRateLimit decodes Twitter's x-rate-limit-* headers. The reset header
// is an epoch timestamp, converted here to seconds from now to match how the
// pause policy reasons about the window.
func parseRateLimit(h http.Header, now time.Time) *domain.RateLimitStatus {
	remainingRaw := h.Get("x-rate-limit-remaining")
	resetRaw := h.Get("x-rate-limit-reset")
	if remainingRaw == "" || resetRaw == "" {
		return nil
	}
	remaining, err := strconv.Atoi(remainingRaw)
	if err != nil {
		return nil
	}
	resetEpoch, err := strconv.ParseInt(resetRaw, 10, 64)
	if err != nil {
		return nil
	}
	until := int(resetEpoch - now.Unix())
	if until < 0 {
		until = 0
	}
	return &domain.RateLimitStatus{Remaining: remaining, SecondsUntilReset: until}
}

package domain

import (
	"context"
	"encoding/json"
)

// TweetID is the numeric identifier of a single tweet.
type TweetID int64

// LookupBatchSize is the maximum number of IDs accepted by one call to
// https://api.twitter.com/1.1/statuses/lookup.json.
const LookupBatchSize = 100

// RateLimitStatus is a snapshot of the API's rate-limit window, reported
// alongside one lookup call and consumed immediately. A nil *RateLimitStatus
// means the service reported nothing for that call.
type RateLimitStatus struct {
	Remaining         int
	SecondsUntilReset int
}

// Fetcher defines the interface for bulk tweet lookup. Payloads come back in
// the service's response order with their bytes untouched. The status is
// returned whenever the service sent rate-limit headers, even when the call
// itself failed.
type Fetcher interface {
	Lookup(ctx context.Context, ids []TweetID) ([]json.RawMessage, *RateLimitStatus, error)
}

package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/weberdc/refetch-tweets/internal/domain"
)

// MockClient implements domain.Fetcher with fabricated payloads, for dry runs
// without credentials or network access.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) Lookup(ctx context.Context, ids []domain.TweetID) ([]json.RawMessage, *domain.RateLimitStatus, error) {
	payloads := make([]json.RawMessage, len(ids))
	for i, id := range ids {
		payloads[i] = json.RawMessage(fmt.Sprintf(
			`{"id_str":"%d","id":%d,"full_text":"simulated tweet %d","retweet_count":%d,"favorite_count":%d}`,
			id, id, id, rand.Intn(500), rand.Intn(2000)))
	}
	return payloads, &domain.RateLimitStatus{Remaining: 900, SecondsUntilReset: 900}, nil
}

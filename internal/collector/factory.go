package collector

import (
	"github.com/weberdc/refetch-tweets/internal/config"
	"github.com/weberdc/refetch-tweets/internal/domain"
)

// NewFetcher selects the fetcher implementation. Mock mode skips credential
// loading entirely so the tool can be exercised offline.
func NewFetcher(mock bool, credentialsFile, proxyFile string) (domain.Fetcher, error) {
	if mock {
		return NewMockClient(), nil
	}
	creds, err := config.LoadCredentials(credentialsFile)
	if err != nil {
		return nil, err
	}
	proxy, err := config.LoadProxy(proxyFile)
	if err != nil {
		return nil, err
	}
	return NewAPIClient(creds, proxy), nil
}

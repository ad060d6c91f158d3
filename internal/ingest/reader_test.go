package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weberdc/refetch-tweets/internal/domain"
)

func TestExtractID_PrefersIDStr(t *testing.T) {
	// The numeric id differs on purpose: id_str must win.
	id, err := ExtractID([]byte(`{"id_str":"903641392558390272","id":903641392558390300}`))

	require.NoError(t, err)
	assert.Equal(t, domain.TweetID(903641392558390272), id)
}

func TestExtractID_NumericFallback(t *testing.T) {
	id, err := ExtractID([]byte(`{"id":12345}`))

	require.NoError(t, err)
	assert.Equal(t, domain.TweetID(12345), id)
}

func TestExtractID_NullIDStrFallsBack(t *testing.T) {
	id, err := ExtractID([]byte(`{"id_str":null,"id":42}`))

	require.NoError(t, err)
	assert.Equal(t, domain.TweetID(42), id)
}

func TestExtractID_BothAbsent(t *testing.T) {
	_, err := ExtractID([]byte(`{"text":"no identifiers here"}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "neither id_str nor id")
}

func TestExtractID_MalformedJSON(t *testing.T) {
	_, err := ExtractID([]byte(`{"id_str":"123`))

	assert.Error(t, err)
}

func TestExtractID_UnparsableIDStr(t *testing.T) {
	_, err := ExtractID([]byte(`{"id_str":"not-a-number"}`))

	assert.Error(t, err)
}

func TestReadSeedIDs_PreservesOrderAndSkipsBadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.json")
	content := `{"id_str":"3"}
this is not JSON
{"id_str":"1"}

{"id":2}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ids, err := ReadSeedIDs(path)

	require.NoError(t, err)
	assert.Equal(t, []domain.TweetID{3, 1, 2}, ids)
}

func TestReadSeedIDs_MissingFile(t *testing.T) {
	_, err := ReadSeedIDs(filepath.Join(t.TempDir(), "nope.json"))

	assert.Error(t, err)
}

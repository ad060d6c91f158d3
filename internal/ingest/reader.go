package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/weberdc/refetch-tweets/internal/domain"
)

type seedTweet struct {
	IDStr *string `json:"id_str"`
	ID    *int64  `json:"id"`
}

// ExtractID recovers a tweet ID from one line of the seed file. The string
// form "id_str" wins when present and non-null; tweet IDs exceed float64
// precision, so the numeric "id" is only a fallback. A JSON null id_str
// counts as absent.
func ExtractID(line []byte) (domain.TweetID, error) {
	var t seedTweet
	if err := json.Unmarshal(line, &t); err != nil {
		return 0, fmt.Errorf("parse seed line: %w", err)
	}
	if t.IDStr != nil {
		id, err := strconv.ParseInt(*t.IDStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse id_str %q: %w", *t.IDStr, err)
		}
		return domain.TweetID(id), nil
	}
	if t.ID != nil {
		return domain.TweetID(*t.ID), nil
	}
	return 0, fmt.Errorf("seed line has neither id_str nor id")
}

// ReadSeedIDs reads the seed tweet file, one JSON object per line, and
// returns the IDs in file order. A line that cannot be parsed is logged and
// skipped (fail-soft); only failure to read the file itself is an error.
func ReadSeedIDs(path string) ([]domain.TweetID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var ids []domain.TweetID
	scanner := bufio.NewScanner(f)
	// Tweets with nested retweet and media entities run long.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		id, err := ExtractID(line)
		if err != nil {
			slog.Warn("Failed to parse seed line", "line", truncate(string(line), 70), "err", err)
			continue
		}
		ids = append(ids, id)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ids, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

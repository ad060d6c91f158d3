package ingest

import "github.com/weberdc/refetch-tweets/internal/domain"

// PartitionIDs splits ids into groups of at most size, preserving order both
// across and within groups. The last group may be short. The groups share
// backing storage with ids.
func PartitionIDs(ids []domain.TweetID, size int) [][]domain.TweetID {
	if size <= 0 || len(ids) == 0 {
		return nil
	}
	batches := make([][]domain.TweetID, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}

package refetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/weberdc/refetch-tweets/internal/annotate"
	"github.com/weberdc/refetch-tweets/internal/domain"
	"github.com/weberdc/refetch-tweets/internal/ingest"
	"github.com/weberdc/refetch-tweets/internal/ratelimit"
	"github.com/weberdc/refetch-tweets/internal/storage"
)

// Orchestrator drives one refetch run: read seed IDs, look them up in
// batches, stamp each result with a collection timestamp, and append
// everything to the output log.
type Orchestrator struct {
	Fetcher   domain.Fetcher
	Limiter   *ratelimit.Limiter
	Appender  *storage.Appender
	BatchSize int
	Now       func() time.Time
	Logger    *slog.Logger
}

func New(fetcher domain.Fetcher, appender *storage.Appender) *Orchestrator {
	return &Orchestrator{
		Fetcher:   fetcher,
		Limiter:   ratelimit.New(),
		Appender:  appender,
		BatchSize: domain.LookupBatchSize,
		Now:       time.Now,
		Logger:    slog.Default(),
	}
}

// Run executes the refetch loop. Only a failure to read the seed file comes
// back as an error: a failed batch contributes zero records and the run moves
// on, and an output-write failure is logged because the network work is
// already done and a re-run refetches by ID anyway.
func (o *Orchestrator) Run(ctx context.Context, seedPath string) error {
	ids, err := ingest.ReadSeedIDs(seedPath)
	if err != nil {
		return err
	}
	o.Logger.Info("Read seed tweet IDs", "count", len(ids))

	var stamped [][]byte
	for i, batch := range ingest.PartitionIDs(ids, o.BatchSize) {
		payloads, status, err := o.Fetcher.Lookup(ctx, batch)
		if err != nil {
			o.Logger.Error("Lookup failed, continuing with next batch", "batch", i+1, "err", err)
		} else {
			ts := annotate.Timestamp(o.Now())
			for _, raw := range payloads {
				line, err := annotate.Stamp(raw, ts)
				if err != nil {
					o.Logger.Warn("Skipping unstampable payload", "batch", i+1, "err", err)
					continue
				}
				stamped = append(stamped, line)
			}
			o.Logger.Debug("Refetched batch", "batch", i+1, "requested", len(batch), "returned", len(payloads))
		}
		// Batches run strictly sequentially: the remaining-call budget is a
		// single shared counter and must be consulted between calls, even
		// when the call itself failed.
		o.Limiter.MaybeDoze(status)
	}
	o.Logger.Info("Refetched tweets", "count", len(stamped))

	if err := o.Appender.Append(stamped); err != nil {
		o.Logger.Error("Failed to append refetched tweets", "path", o.Appender.Path, "err", err)
		return nil
	}
	o.Logger.Info("Appended refetched tweets", "path", o.Appender.Path, "count", len(stamped))
	return nil
}

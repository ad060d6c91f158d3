package dashboard

import (
	"bufio"
	"encoding/json"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/weberdc/refetch-tweets/internal/annotate"
)

// snapshot is the slice of each output-log record the dashboard cares about.
type snapshot struct {
	CollectedAt   string `json:"collected_at"`
	IDStr         string `json:"id_str"`
	RetweetCount  int    `json:"retweet_count"`
	FavoriteCount int    `json:"favorite_count"`
}

// StartServer serves two charts over the output log: how many records each
// collection pass produced, and which tweets carry the most engagement in
// their latest snapshot.
func StartServer(outfile, port string) error {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		snaps := loadSnapshots(outfile)

		// 1. Records per collection pass
		passes, counts := recordsPerPass(snaps)
		passBar := charts.NewBar()
		passBar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Records per collection pass"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)
		var passY []opts.BarData
		for _, c := range counts {
			passY = append(passY, opts.BarData{Value: c})
		}
		passBar.SetXAxis(passes).AddSeries("Records", passY)

		// 2. Engagement leaders, latest snapshot per tweet
		ids, retweets := topByRetweets(snaps, 20)
		topBar := charts.NewBar()
		topBar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top tweets by retweets"}))
		var topY []opts.BarData
		for _, v := range retweets {
			topY = append(topY, opts.BarData{Value: v})
		}
		topBar.SetXAxis(ids).AddSeries("Retweets", topY)

		passBar.Render(w)
		topBar.Render(w)
	})

	return http.ListenAndServe(":"+port, nil)
}

func loadSnapshots(path string) []snapshot {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var snaps []snapshot
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var s snapshot
		if err := json.Unmarshal(scanner.Bytes(), &s); err == nil {
			snaps = append(snaps, s)
		}
	}
	return snaps
}

func recordsPerPass(snaps []snapshot) ([]string, []int) {
	byPass := make(map[string]int)
	for _, s := range snaps {
		byPass[s.CollectedAt]++
	}
	passes := make([]string, 0, len(byPass))
	for ts := range byPass {
		passes = append(passes, ts)
	}
	sort.Slice(passes, func(i, j int) bool {
		ti, erri := time.Parse(annotate.TimestampLayout, passes[i])
		tj, errj := time.Parse(annotate.TimestampLayout, passes[j])
		if erri != nil || errj != nil {
			return passes[i] < passes[j]
		}
		return ti.Before(tj)
	})
	counts := make([]int, len(passes))
	for i, ts := range passes {
		counts[i] = byPass[ts]
	}
	return passes, counts
}

func topByRetweets(snaps []snapshot, n int) ([]string, []int) {
	// The log is append-only, so the last line per tweet is its latest state.
	latest := make(map[string]snapshot)
	for _, s := range snaps {
		if s.IDStr == "" {
			continue
		}
		latest[s.IDStr] = s
	}
	all := make([]snapshot, 0, len(latest))
	for _, s := range latest {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].RetweetCount != all[j].RetweetCount {
			return all[i].RetweetCount > all[j].RetweetCount
		}
		return all[i].IDStr < all[j].IDStr
	})
	if len(all) > n {
		all = all[:n]
	}
	ids := make([]string, len(all))
	retweets := make([]int, len(all))
	for i, s := range all {
		ids[i] = s.IDStr
		retweets[i] = s.RetweetCount
	}
	return ids, retweets
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/weberdc/refetch-tweets/internal/annotate"
	"github.com/weberdc/refetch-tweets/internal/collector"
	"github.com/weberdc/refetch-tweets/internal/dashboard"
	"github.com/weberdc/refetch-tweets/internal/refetch"
	"github.com/weberdc/refetch-tweets/internal/storage"
)

const proxyFile = "./proxy.properties"

func main() {
	infile := flag.StringP("seed-tweets", "i", "./tweets.json", "File of seed tweets to update")
	outfile := flag.StringP("outfile", "o", "./updated-tweets.json", "File to update with refetched tweets")
	credentialsFile := flag.StringP("credentials", "c", "./twitter.properties", "Properties file with Twitter OAuth credentials")
	verbose := flag.BoolP("verbose", "v", false, "Debug mode")
	mock := flag.Bool("mock", false, "Use a simulated Twitter client (no credentials needed)")
	dashboardPort := flag.String("dashboard", "", "Serve a drift dashboard on this port after the run")
	help := flag.BoolP("help", "h", false, "Help")
	flag.Parse()

	if *help {
		fmt.Fprintln(os.Stderr, "Usage: refetch-tweets [options]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, flag.CommandLine.FlagUsages())
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("Refetching tweets",
		"seeds", *infile,
		"outfile", *outfile,
		"debug", *verbose,
		"started_at", annotate.Timestamp(time.Now()),
	)

	fetcher, err := collector.NewFetcher(*mock, *credentialsFile, proxyFile)
	if err != nil {
		logger.Error("Failed to initialize Twitter client", "err", err)
		os.Exit(1)
	}

	orch := refetch.New(fetcher, &storage.Appender{Path: *outfile})
	if err := orch.Run(context.Background(), *infile); err != nil {
		logger.Error("Refetch run failed", "err", err)
		os.Exit(1)
	}
	logger.Info("Refetching complete", "at", annotate.Timestamp(time.Now()))

	if *dashboardPort != "" {
		logger.Info("Starting drift dashboard", "port", *dashboardPort)
		if err := dashboard.StartServer(*outfile, *dashboardPort); err != nil {
			logger.Error("Dashboard failed", "err", err)
			os.Exit(1)
		}
	}
}

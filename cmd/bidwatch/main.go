// Command bidwatch scrapes a page range of the auction listing straight
// from the terminal: legacy TSV on stdout (or a file), optional
// normalized CSV, live progress on stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bidwatch/bidwatch/browser"
	"github.com/bidwatch/bidwatch/config"
	"github.com/bidwatch/bidwatch/export"
	"github.com/bidwatch/bidwatch/models"
	"github.com/bidwatch/bidwatch/progress"
	"github.com/bidwatch/bidwatch/scraper"
)

type cliFlags struct {
	url      string
	page     int
	start    int
	end      int
	outTSV   string
	outCSV   string
	headless bool
	progress bool
	colors   bool
}

func main() {
	var flags cliFlags

	root := &cobra.Command{
		Use:   "bidwatch",
		Short: "Scrape auction listings into IDS TSV and normalized CSV",
		Long: `bidwatch drives a headless browser through the auction listing,
paginating until the requested page range has been collected. Records
stream to the TSV output as they are scraped; --out-csv additionally
writes the normalized schema.

Either give --page N (pages 1..N) or an explicit --start/--end window.
--start alone scrapes that single page; --end alone means 1..end.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	root.Flags().StringVar(&flags.url, "url", "", "listing URL to scrape (default from env/config)")
	root.Flags().IntVar(&flags.page, "page", 0, "scrape pages 1..N (shorthand)")
	root.Flags().IntVar(&flags.start, "start", 0, "first page of the output window")
	root.Flags().IntVar(&flags.end, "end", 0, "last page of the output window")
	root.Flags().StringVar(&flags.outTSV, "out-tsv", "", "TSV output file (default stdout)")
	root.Flags().StringVar(&flags.outCSV, "out-csv", "", "also write normalized CSV to this file")
	root.Flags().BoolVar(&flags.headless, "headless", true, "run the browser headless")
	root.Flags().BoolVar(&flags.progress, "progress", true, "print per-record progress to stderr")
	root.Flags().BoolVar(&flags.colors, "colors", true, "colorize progress output")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, flags cliFlags) error {
	// Progress owns stderr; keep slog out of the way unless something
	// actually goes wrong.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	start, end, err := resolveRange(cmd, flags)
	if err != nil {
		return err
	}

	cfg := config.Load()
	cfg.Browser.Headless = flags.headless
	if flags.url != "" {
		cfg.Scraper.SourceURL = flags.url
	}

	// Output sinks before the browser: fail on a bad path without
	// launching Chrome.
	tsvOut, closeTSV, err := openOutput(flags.outTSV)
	if err != nil {
		return err
	}
	defer closeTSV()

	tsv, err := export.NewTSVWriter(tsvOut)
	if err != nil {
		return err
	}

	var csv *export.CSVWriter
	if flags.outCSV != "" {
		csvOut, closeCSV, err := openOutput(flags.outCSV)
		if err != nil {
			return err
		}
		defer closeCSV()
		if csv, err = export.NewCSVWriter(csvOut); err != nil {
			return err
		}
	}

	printer := progress.New(os.Stderr, flags.progress, flags.colors)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := browser.New(cfg.Browser)
	if err != nil {
		return err
	}
	defer b.Close()

	page, err := b.NewPage(ctx, cfg.Scraper.NavigationTimeout)
	if err != nil {
		return err
	}
	defer page.Close()

	trav := scraper.NewTraversal(cfg.Scraper, nil)

	lastPage := 0
	trav.OnPage = func(pageNum int, strategy scraper.Strategy) {
		lastPage = pageNum
		if strategy == scraper.StrategyNone {
			printer.Banner(fmt.Sprintf("==> Start p%d  %s", pageNum, cfg.Scraper.SourceURL))
			return
		}
		printer.Banner(fmt.Sprintf("==> Loaded p%d (%s)", pageNum, strategy))
	}

	var writeErr error
	emit := func(index, pageNum int, row models.IDSRow, rec models.NormalizedRecord) {
		if writeErr != nil {
			return
		}
		if err := tsv.Write(row); err != nil {
			writeErr = err
			return
		}
		if csv != nil {
			if err := csv.Write(rec); err != nil {
				writeErr = err
				return
			}
		}
		printer.Record(index, pageNum, row, rec)
	}

	result, err := trav.Run(ctx, page, start, end, emit)
	if err != nil {
		if ctx.Err() != nil {
			return errors.New("interrupted")
		}
		return err
	}
	if writeErr != nil {
		return writeErr
	}

	if lastPage < end {
		printer.Halt(fmt.Sprintf("==> Listing exhausted at p%d (requested through p%d)", lastPage, end))
	}
	fmt.Fprintf(os.Stderr, "Scraped %d unique items (pages %d..%d)\n",
		result.ItemsCount, result.Start, result.End)
	return nil
}

// resolveRange turns the page/start/end flags into a concrete window,
// mirroring the HTTP API's shorthand rules.
func resolveRange(cmd *cobra.Command, flags cliFlags) (int, int, error) {
	pageSet := cmd.Flags().Changed("page")
	startSet := cmd.Flags().Changed("start")
	endSet := cmd.Flags().Changed("end")

	if pageSet && (startSet || endSet) {
		fmt.Fprintln(os.Stderr, "Note: --page is ignored when --start/--end are given")
	}

	start, end := flags.start, flags.end
	switch {
	case !startSet && !endSet:
		page := 1
		if pageSet && flags.page > 1 {
			page = flags.page
		}
		start, end = 1, page
	case startSet && !endSet:
		end = start
	case !startSet && endSet:
		start = 1
	}

	if start < 1 {
		return 0, 0, errors.New("--start must be >= 1")
	}
	if end < start {
		return 0, 0, errors.New("--end must be >= --start")
	}
	return start, end, nil
}

// openOutput returns stdout for an empty path, else creates the file.
func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}

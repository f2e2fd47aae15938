// Command normalize converts one month of a raw transaction export into the
// artifact the UI loads, without any of the backend infrastructure.
//
//	normalize -year 2025 -month 11 -in transactions.json -out database.js
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/momopress-backend/internal/config"
	"github.com/momopress-backend/internal/data/artifact"
	"github.com/momopress-backend/internal/data/source"
	"github.com/momopress-backend/internal/domain/transaction"
	"github.com/momopress-backend/internal/logger"
	"github.com/momopress-backend/internal/normalizer"
	"github.com/momopress-backend/internal/refresh"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("normalize", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		year       = fs.String("year", "", "year of the period, e.g. 2025")
		month      = fs.String("month", "", "month of the period, 1-12")
		in         = fs.String("in", "transactions.json", "raw transaction export")
		out        = fs.String("out", "database.js", `artifact path, or "-" for stdout`)
		format     = fs.String("format", artifact.FormatJS, "artifact format: js or json")
		variable   = fs.String("var", "transactionsDB", "global assigned by the js format")
		rulesFile  = fs.String("rules", "", "optional JSON rules file")
		raw        = fs.Bool("raw", false, "keep TransactionType as the category and leave icons empty")
		iconPrefix = fs.String("icon-prefix", "", `prefix added to every icon, e.g. "fa-"`)
		logLevel   = fs.String("log-level", "warn", "debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	period, err := transaction.ParsePeriod(*year, *month)
	if err != nil {
		fmt.Fprintln(stderr, "Invalid year or month")
		return exitUsage
	}

	log := logger.New(stderr, *logLevel, "normalize")

	norm, err := normalizer.FromConfig(&config.RulesConfig{File: *rulesFile, RawCategories: *raw, IconPrefix: *iconPrefix})
	if err != nil {
		fmt.Fprintf(stderr, "load rules: %v\n", err)
		return exitError
	}

	toStdout := *out == "-"
	artifactCfg := &config.ArtifactConfig{Format: *format, Variable: *variable, Dir: ".", NameTemplate: "stdout"}
	if !toStdout {
		artifactCfg.Dir = filepath.Dir(*out)
		artifactCfg.NameTemplate = filepath.Base(*out)
	}
	writer, err := artifact.NewWriter(log, artifactCfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	loader := source.NewFileLoader(log, *in)

	if toStdout {
		pipeline := refresh.NewPipeline(loader, norm, nil, nil, nil, log)
		txs, _, err := pipeline.Normalize(ctx, period)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		data, err := writer.Render(txs)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		if _, err := stdout.Write(data); err != nil {
			return exitError
		}
		return exitOK
	}

	result, err := refresh.NewPipeline(loader, norm, writer, nil, nil, log).Refresh(ctx, period, "")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	fmt.Fprintf(stdout, "%s: %d of %d transactions written to %s\n",
		period, len(result.Transactions), result.SourceCount, result.ArtifactPath)
	return exitOK
}

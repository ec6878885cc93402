// Command geflip scores Grand Exchange flips from a price snapshot and the item
// mapping.
//
// Usage:
//
//	geflip scan [flags]          list the best opportunities
//	geflip inspect [flags] <id>  detailed report of a single item
//	geflip serve [flags]         run the JSON API and the web listing
//	geflip setup                 generate a yaml config interactively
//
// Every command except setup accepts --config and the flags listed by
// "geflip <command> --help".
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/geflip/config"
	"github.com/vadiminshakov/geflip/internal/report"
	"github.com/vadiminshakov/geflip/internal/services/analyzer"
	"github.com/vadiminshakov/geflip/internal/services/catalog"
	"github.com/vadiminshakov/geflip/internal/services/narrative"
	"github.com/vadiminshakov/geflip/internal/services/screener"
	"github.com/vadiminshakov/geflip/internal/setup"
	"github.com/vadiminshakov/geflip/internal/web"
)

const usage = `usage: geflip <scan|inspect|serve|setup> [flags]`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout, logger); err != nil {
		logger.Fatal("geflip failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer, logger *zap.Logger) error {
	if command == "setup" {
		path := setup.DefaultPath
		if len(args) > 0 {
			path = args[0]
		}
		return setup.RunTUI(path)
	}
	switch command {
	case "scan", "inspect", "serve":
	default:
		return errors.Errorf("unknown command %q, %s", command, usage)
	}

	conf, rest, err := config.Get(command, args)
	if err != nil {
		return err
	}

	a := analyzer.New(logger, analyzer.WithTaxRate(conf.TaxRate))
	s := screener.New(a, logger, conf.Workers)

	items, err := catalog.Load(conf.PricesPath, conf.MappingPath, conf.TaxRate)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	logger.Info("catalog loaded",
		zap.Int("priced", items.Len()),
		zap.Time("snapshot", items.Timestamp()),
	)

	switch command {
	case "scan":
		return scan(ctx, out, conf, s, items)
	case "inspect":
		return inspect(out, conf, a, items, rest)
	default:
		return serve(ctx, conf, a, s, items, logger)
	}
}

func scan(ctx context.Context, out io.Writer, conf config.Config, s *screener.Screener, items *catalog.Catalog) error {
	opps, err := s.Scan(ctx, items.Observations(), conf.Trading)
	if err != nil {
		return err
	}

	opps = screener.FilterMembership(screener.Filter(opps, conf.Trading), conf.Members)
	screener.Sort(opps, conf.SortBy, true)

	if err := report.Summary(out, len(opps), screener.Bucketize(opps)); err != nil {
		return err
	}
	if conf.Top > 0 && len(opps) > conf.Top {
		opps = opps[:conf.Top]
	}

	title := fmt.Sprintf("Top flips by %s", conf.SortBy)
	return report.Opportunities(out, title, opps)
}

func inspect(out io.Writer, conf config.Config, a *analyzer.Analyzer, items *catalog.Catalog, args []string) error {
	if len(args) == 0 {
		return errors.New("inspect needs an item id")
	}
	id := args[0]

	obs, err := items.Lookup(id)
	if err != nil {
		return err
	}

	return report.Inspection(out, obs.DisplayName(), a.Inspect(&obs, conf.Trading), narrative.English{})
}

func serve(ctx context.Context, conf config.Config, a *analyzer.Analyzer, s *screener.Screener, items *catalog.Catalog, logger *zap.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	server := web.NewServer(conf.Listen, a, s, items, conf.Trading, logger)
	g.Go(func() error {
		return server.Start(ctx)
	})

	return g.Wait()
}

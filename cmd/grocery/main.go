package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/idilsaglam/grocery/internal/cli"
	"github.com/idilsaglam/grocery/internal/config"
	"github.com/idilsaglam/grocery/internal/grocery"
	"github.com/idilsaglam/grocery/internal/kv"
	"github.com/idilsaglam/grocery/internal/kv/badgerkv"
	"github.com/idilsaglam/grocery/internal/kv/filekv"
	"github.com/idilsaglam/grocery/internal/logging"
	"github.com/idilsaglam/grocery/internal/model"
	"github.com/idilsaglam/grocery/internal/tui"
	"github.com/idilsaglam/grocery/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	sortFlag := flag.String("sort", "", "sort mode: name, category, purchased, date, favorites")
	theme := flag.String("theme", "", "classic, neon or mono")
	forceColor := flag.Bool("color", false, "force colors")
	noColor := flag.Bool("no-color", false, "disable colors")
	ephemeral := flag.Bool("ephemeral", false, "keep the list in memory only")
	flag.Usage = cli.PrintHelp
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	if *sortFlag != "" {
		if cfg.Sort, err = model.ParseSortMode(*sortFlag); err != nil {
			ui.Fail(err.Error())
			return 2
		}
	}
	if *theme != "" {
		cfg.Theme = *theme
	}
	if *ephemeral {
		cfg.Backend = config.BackendMemory
	}

	ui.SetColorForcing(*forceColor, *noColor || os.Getenv("NO_COLOR") != "")
	ui.SetTheme(cfg.Theme)

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer func() { _ = log.Sync() }()

	backend, err := openBackend(cfg)
	if err != nil {
		log.Error("open storage", zap.String("backend", cfg.Backend), zap.Error(err))
		ui.Fail(err.Error())
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
	}()
	log.Debug("storage ready", zap.String("backend", cfg.Backend), zap.String("path", cfg.DataPath))

	store := grocery.New(backend,
		grocery.WithLogger(log),
		grocery.WithSortMode(cfg.Sort),
	)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(flag.Args(), cli.Options{
		Store:       store,
		Log:         log,
		Interactive: tui.Run,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

func openBackend(cfg *config.Config) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		return badgerkv.Open(cfg.DataPath)
	case config.BackendMemory:
		return kv.NewMemory(), nil
	default:
		return filekv.Open(cfg.DataPath)
	}
}

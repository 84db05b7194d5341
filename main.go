package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/gol-universe/model"
	"github.com/sheikhrachel/gol-universe/utils"
)

func main() {
	config, source, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, closeLog, err := newLogger(config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer closeLog()
	logger.Info("configuration loaded", "source", source, "width", config.Width, "height", config.Height)

	grid, err := newGrid(config, logger)
	if err != nil {
		logger.Error("failed to create grid", "error", err)
		os.Exit(1)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := newGame(config, grid, logger)
	if config.Interactive {
		err = session.runInteractive(ctx)
	} else {
		err = session.runPlain(ctx, os.Stdout)
	}
	if err != nil {
		logger.Error("game stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("final stats",
		"generations", session.generation,
		"seconds", session.elapsed().Seconds(),
		"avg_population", session.stats.AveragePopulation)
}

// loadConfig layers command-line flags over config.json (or the file named by
// -config) over the defaults. It returns where the base values came from.
func loadConfig(args []string) (utils.Config, string, error) {
	config := utils.DefaultConfig()

	fs := flag.NewFlagSet("gol", flag.ContinueOnError)
	path := fs.String("config", "config.json", "JSON configuration file")
	config.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return config, "", err
	}

	source := "defaults"
	fileConfig, err := utils.LoadConfig(*path)
	switch {
	case err == nil:
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) {
			explicit[f.Name] = f.Value.String()
		})
		config = fileConfig
		for name, value := range explicit {
			if err = fs.Set(name, value); err != nil {
				return config, "", errors.Wrapf(err, "[loadConfig] failed to apply flag %s", name)
			}
		}
		source = *path
	case !errors.Is(err, os.ErrNotExist):
		return config, "", err
	}

	if err = config.Validate(); err != nil {
		return config, "", errors.Wrap(err, "[loadConfig]")
	}
	return config, source, nil
}

// newLogger writes to stderr in plain mode. The interactive screen owns the
// terminal, so there logs go to LogFile or nowhere.
func newLogger(config utils.Config) (*slog.Logger, func(), error) {
	level, err := config.Level()
	if err != nil {
		return nil, nil, err
	}

	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case config.LogFile != "":
		f, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "[newLogger] failed to open log file: %+v", config.LogFile)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	case config.Interactive:
		out = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}

func newGrid(config utils.Config, logger *slog.Logger) (*model.Grid, error) {
	opts := []model.Option{
		model.WithLogger(logger),
		model.WithWorkers(config.Workers),
	}
	if config.Seed != 0 {
		opts = append(opts, model.WithSeed(config.Seed))
	}
	if config.LegacyStamping {
		opts = append(opts, model.WithStamping(model.StampLegacy))
	}
	return model.New(config.Width, config.Height, opts...)
}

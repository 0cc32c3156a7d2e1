package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/a3tai/resume-extractor/internal/batch"
	"github.com/a3tai/resume-extractor/internal/config"
	"github.com/a3tai/resume-extractor/internal/fields"
	"github.com/a3tai/resume-extractor/internal/mcp"
	"github.com/a3tai/resume-extractor/internal/pdf"
	"github.com/a3tai/resume-extractor/internal/record"
	"github.com/a3tai/resume-extractor/internal/sink"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging builds the console logger on stderr so stdout stays free for
// CSV summaries and the MCP protocol
func setupLogging(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	logCtx := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Str("mode", cfg.Mode)
	if cfg.IsDebug() {
		logCtx = logCtx.Caller()
	}
	return logCtx.Logger()
}

// buildPipeline wires the text backend, field extractor, driver and sink
// described by cfg
func buildPipeline(cfg *config.Config, logger zerolog.Logger) (*batch.Driver, *sink.CSVSink, error) {
	text, err := pdf.NewTextExtractor(pdf.Backend(cfg.Backend), cfg.MaxFileSize)
	if err != nil {
		return nil, nil, err
	}

	skills, err := fields.NewSkillStrategy(cfg.SkillStrategy, cfg.SkillsFile)
	if err != nil {
		return nil, nil, err
	}

	extractor := fields.NewExtractor(
		fields.WithSkillStrategy(skills),
		fields.WithCountryCode(cfg.CountryCode),
	)

	driver := batch.NewDriver(text, extractor,
		batch.WithWorkers(cfg.Workers),
		batch.WithIgnoreCase(cfg.IgnoreCase),
		batch.WithLogger(logger),
		batch.WithProgress(func(p batch.Progress) {
			logger.Info().
				Int("done", p.Done).
				Int("total", p.Total).
				Str("file", p.Record.Filename).
				Str("status", string(p.Record.Status)).
				Msg("document processed")
		}),
	)

	csvSink, err := sink.NewCSVSink(record.Schema(cfg.Columns), cfg.IncludeStatus)
	if err != nil {
		return nil, nil, err
	}

	return driver, csvSink, nil
}

// runBatch extracts a folder, or the positional files when given, and
// overwrites the output CSV. Records finished before a cancellation are
// still written.
func runBatch(ctx context.Context, cfg *config.Config, driver *batch.Driver, csvSink *sink.CSVSink,
	logger zerolog.Logger, out io.Writer,
) error {
	var (
		records record.RecordSet
		runErr  error
	)
	if len(cfg.Files) > 0 {
		records, runErr = driver.ExtractFiles(ctx, cfg.Files)
	} else {
		records, runErr = driver.ExtractBatch(ctx, cfg.Directory)
		if runErr != nil && records == nil {
			return runErr
		}
	}

	if err := csvSink.WriteAll(cfg.Output, records); err != nil {
		return err
	}

	summary := batch.Summarize(records)
	logger.Info().
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("no_text", summary.NoText).
		Int("failed", summary.Failed).
		Str("output", cfg.Output).
		Msg("batch finished")

	fmt.Fprintf(out, "Processed %d file(s): %d succeeded, %d without text, %d failed\n",
		summary.Total, summary.Succeeded, summary.NoText, summary.Failed)
	fmt.Fprintf(out, "CSV saved: %s\n", cfg.Output)

	return runErr
}

// runAppend extracts each positional file and appends it to the output CSV
func runAppend(ctx context.Context, cfg *config.Config, driver *batch.Driver, csvSink *sink.CSVSink,
	logger zerolog.Logger, out io.Writer,
) error {
	for _, path := range cfg.Files {
		if err := ctx.Err(); err != nil {
			return err
		}

		r := driver.ExtractDocument(ctx, path)
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := csvSink.Append(cfg.Output, r); err != nil {
			return err
		}

		if r.Succeeded() {
			fmt.Fprintf(out, "Data from '%s' has been appended to '%s'.\n", path, cfg.Output)
		} else {
			fmt.Fprintf(out, "Failed to extract data from '%s' (%s), recorded in '%s'.\n", path, r.Status, cfg.Output)
		}
		logger.Debug().Str("file", r.Filename).Str("status", string(r.Status)).Msg("record appended")
	}
	return nil
}

func main() {
	cfg, err := config.LoadFromFlags()
	if errors.Is(err, config.ErrVersionRequested) {
		printVersion()
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	logger := setupLogging(cfg, os.Stderr)
	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")

	driver, csvSink, err := buildPipeline(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to set up extraction")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case cfg.IsStdioMode():
		server, err := mcp.NewServer(cfg, driver, csvSink, logger)
		if err != nil {
			logger.Error().Err(err).Msg("failed to create MCP server")
			os.Exit(1)
		}
		err = server.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("server stopped with error")
			os.Exit(1)
		}
	case cfg.IsAppendMode():
		err = runAppend(ctx, cfg, driver, csvSink, logger, os.Stdout)
		if err != nil {
			logger.Error().Err(err).Msg("append failed")
			os.Exit(1)
		}
	case cfg.IsBatchMode():
		err = runBatch(ctx, cfg, driver, csvSink, logger, os.Stdout)
		if err != nil {
			logger.Error().Err(err).Msg("batch failed")
			os.Exit(1)
		}
	default:
		logger.Error().Str("mode", cfg.Mode).Msg("unsupported mode")
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("Resume Extractor\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/a3tai/resume-extractor/internal/config"
	"github.com/a3tai/resume-extractor/internal/pdf/pdftest"
	"github.com/a3tai/resume-extractor/internal/sink"
)

const testVersion = "1.2.3"

func TestPrintVersion(t *testing.T) {
	originalStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	version = testVersion
	buildTime = "2024-03-01_10:30:00"
	gitCommit = "abc123"

	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
		os.Stdout = originalStdout
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		printVersion()
		w.Close()
	}()

	var buf bytes.Buffer
	io.Copy(&buf, r)
	<-done

	output := buf.String()
	for _, expected := range []string{
		"Resume Extractor",
		"Version: " + testVersion,
		"Build Time: 2024-03-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		if !strings.Contains(output, expected) {
			t.Errorf("printVersion() output missing expected string: %s\nActual output:\n%s", expected, output)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantLevel zerolog.Level
	}{
		{name: "debug", logLevel: "debug", wantLevel: zerolog.DebugLevel},
		{name: "warn", logLevel: "warn", wantLevel: zerolog.WarnLevel},
		{name: "invalid falls back to info", logLevel: "loud", wantLevel: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LogLevel = tt.logLevel

			var buf bytes.Buffer
			logger := setupLogging(cfg, &buf)
			if logger.GetLevel() != tt.wantLevel {
				t.Errorf("setupLogging() level = %v, want %v", logger.GetLevel(), tt.wantLevel)
			}

			logger.Error().Msg("hello")
			if !strings.Contains(buf.String(), "run_id=") {
				t.Errorf("expected run_id in log output, got %q", buf.String())
			}
		})
	}
}

func TestSetupLogging_CallerOnlyInDebug(t *testing.T) {
	for _, level := range []string{"debug", "info"} {
		t.Run(level, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.LogLevel = level

			var buf bytes.Buffer
			logger := setupLogging(cfg, &buf)
			logger.Error().Msg("hello")

			hasCaller := strings.Contains(buf.String(), "main_test.go")
			if hasCaller != (level == "debug") {
				t.Errorf("caller in %s output = %v, got %q", level, hasCaller, buf.String())
			}
		})
	}
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	pdftest.Write(t, filepath.Join(dir, "a.pdf"), "John Smith john@example.com 0300-1234567")
	pdftest.WriteCorrupt(t, filepath.Join(dir, "b.pdf"))

	cfg := config.DefaultConfig()
	cfg.Directory = dir
	cfg.Output = filepath.Join(t.TempDir(), "out.csv")
	cfg.Columns = "minimal"
	cfg.CountryCode = "92"
	return cfg
}

func TestRunBatch(t *testing.T) {
	cfg := newTestConfig(t)

	driver, csvSink, err := buildPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildPipeline() unexpected error: %v", err)
	}

	var out bytes.Buffer
	if err := runBatch(context.Background(), cfg, driver, csvSink, zerolog.Nop(), &out); err != nil {
		t.Fatalf("runBatch() unexpected error: %v", err)
	}

	if !strings.Contains(out.String(), "Processed 2 file(s): 1 succeeded, 0 without text, 1 failed") {
		t.Errorf("unexpected summary: %s", out.String())
	}

	records, err := sink.Read(cfg.Output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Name != "John Smith" || records[0].Phone != "923001234567" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[1].Status != "failed" {
		t.Errorf("expected second record to be failed, got %s", records[1].Status)
	}
}

func TestRunBatch_MissingDirectory(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Directory = filepath.Join(cfg.Directory, "missing")

	driver, csvSink, err := buildPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildPipeline() unexpected error: %v", err)
	}

	if err := runBatch(context.Background(), cfg, driver, csvSink, zerolog.Nop(), io.Discard); err == nil {
		t.Error("runBatch() expected error for a missing directory")
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Error("output should not be created when listing fails")
	}
}

func TestRunAppend(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Mode = config.ModeAppend
	cfg.Files = []string{filepath.Join(cfg.Directory, "a.pdf"), filepath.Join(cfg.Directory, "b.pdf")}

	driver, csvSink, err := buildPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildPipeline() unexpected error: %v", err)
	}

	var out bytes.Buffer
	for i := 0; i < 2; i++ {
		if err := runAppend(context.Background(), cfg, driver, csvSink, zerolog.Nop(), &out); err != nil {
			t.Fatalf("runAppend() unexpected error: %v", err)
		}
	}

	if !strings.Contains(out.String(), "has been appended to") {
		t.Errorf("missing success notice: %s", out.String())
	}
	if !strings.Contains(out.String(), "Failed to extract data from") {
		t.Errorf("missing failure notice: %s", out.String())
	}

	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header and 4 rows, got %d lines:\n%s", len(lines), data)
	}
	if strings.Count(string(data), "name,email,phone,filename") != 1 {
		t.Errorf("header should be written once:\n%s", data)
	}
}

func TestRunAppend_Cancelled(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Files = []string{filepath.Join(cfg.Directory, "a.pdf")}

	driver, csvSink, err := buildPipeline(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("buildPipeline() unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runAppend(ctx, cfg, driver, csvSink, zerolog.Nop(), io.Discard); err == nil {
		t.Error("runAppend() expected context error")
	}
	if _, err := os.Stat(cfg.Output); !os.IsNotExist(err) {
		t.Error("nothing should be appended after cancellation")
	}
}

func TestBuildPipeline_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *config.Config)
	}{
		{name: "unknown backend", modify: func(c *config.Config) { c.Backend = "ocr" }},
		{name: "missing skills file", modify: func(c *config.Config) {
			c.SkillStrategy = "taxonomy"
			c.SkillsFile = "/does/not/exist.yaml"
		}},
		{name: "unknown columns", modify: func(c *config.Config) { c.Columns = "wide" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.modify(cfg)
			if _, _, err := buildPipeline(cfg, zerolog.Nop()); err == nil {
				t.Error("buildPipeline() expected error")
			}
		})
	}
}

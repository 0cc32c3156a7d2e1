// Package batch turns PDF files into records, one document at a time or a
// whole folder at once.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	errs "github.com/a3tai/resume-extractor/internal/errors"
	"github.com/a3tai/resume-extractor/internal/fields"
	"github.com/a3tai/resume-extractor/internal/pdf"
	"github.com/a3tai/resume-extractor/internal/record"
)

// FieldExtractor finds résumé fields in plain text
type FieldExtractor interface {
	Extract(text string) (*fields.Fields, error)
}

// Progress is reported after each document of a run
type Progress struct {
	Done   int
	Total  int
	Path   string
	Record record.Record
}

// ProgressFunc receives progress updates. Calls are serialized.
type ProgressFunc func(Progress)

// Driver coordinates text extraction, field extraction and discovery
type Driver struct {
	text       pdf.TextExtractor
	fields     FieldExtractor
	search     *pdf.Search
	workers    int
	ignoreCase bool
	progress   ProgressFunc
	logger     zerolog.Logger
}

// Option configures a Driver
type Option func(*Driver)

// WithWorkers sets how many documents are processed at once
func WithWorkers(n int) Option {
	return func(d *Driver) {
		d.workers = n
	}
}

// WithIgnoreCase accepts ".PDF" and other case variants during discovery
func WithIgnoreCase(ignore bool) Option {
	return func(d *Driver) {
		d.ignoreCase = ignore
	}
}

// WithProgress registers a progress callback
func WithProgress(fn ProgressFunc) Option {
	return func(d *Driver) {
		d.progress = fn
	}
}

// WithLogger sets the logger used for per-document diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates a driver. It processes documents sequentially and logs
// nothing unless configured otherwise.
func NewDriver(text pdf.TextExtractor, f FieldExtractor, opts ...Option) *Driver {
	d := &Driver{
		text:    text,
		fields:  f,
		search:  pdf.NewSearch(),
		workers: 1,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.workers < 1 {
		d.workers = 1
	}
	return d
}

// ExtractDocument builds the record for one file. Failures are reported in
// the record's status and never returned.
func (d *Driver) ExtractDocument(ctx context.Context, path string) record.Record {
	r, _ := d.extractDocument(ctx, path)
	return r
}

// extractDocument returns ctx's error when the read was interrupted by
// cancellation. The record is then a failed one and must not be kept as a
// finished result.
func (d *Driver) extractDocument(ctx context.Context, path string) (record.Record, error) {
	log := d.logger.With().Str("path", path).Logger()

	text, err := d.text.ExtractText(ctx, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			log.Debug().Err(err).Msg("document interrupted")
			return record.Failed(path, err), ctxErr
		}
		log.Warn().Err(err).Msg("document could not be read")
		return record.Failed(path, err), nil
	}

	if strings.TrimSpace(text) == "" {
		noText := errs.NoText(path)
		log.Warn().Err(noText).Msg("no text content could be extracted")
		return record.NoText(path, noText), nil
	}

	f, err := d.fields.Extract(text)
	if err != nil {
		log.Warn().Err(err).Msg("language analysis failed, keeping pattern fields only")
	}

	r := record.New(path)
	if f != nil {
		r.Name = f.Name
		r.Email = f.Email
		r.Phone = f.Phone
		r.Skills = f.Skills
		r.Experience = f.Experience
		r.Education = f.Education
	}

	log.Debug().
		Str("name", r.Name).
		Int("skills", len(r.Skills)).
		Int("experience", len(r.Experience)).
		Int("education", len(r.Education)).
		Msg("document processed")
	return r, nil
}

// ExtractBatch processes every PDF directly inside dir, in name order. Only
// a listing failure or cancellation is returned as an error; on cancellation
// the records finished so far are returned with it.
func (d *Driver) ExtractBatch(ctx context.Context, dir string) (record.RecordSet, error) {
	res, err := d.search.SearchDirectory(pdf.PDFSearchDirectoryRequest{
		Directory:  dir,
		IgnoreCase: d.ignoreCase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	paths := make([]string, len(res.Files))
	for i, f := range res.Files {
		paths[i] = f.Path
	}

	d.logger.Info().Str("directory", res.Directory).Int("files", len(paths)).Msg("starting batch")
	return d.ExtractFiles(ctx, paths)
}

// ExtractFiles processes paths and returns one record per path in the same
// order
func (d *Driver) ExtractFiles(ctx context.Context, paths []string) (record.RecordSet, error) {
	if d.workers == 1 {
		return d.extractSequential(ctx, paths)
	}
	return d.extractParallel(ctx, paths)
}

func (d *Driver) extractSequential(ctx context.Context, paths []string) (record.RecordSet, error) {
	records := make(record.RecordSet, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return records, err
		}

		r, err := d.extractDocument(ctx, path)
		if err != nil {
			return records, err
		}
		records = append(records, r)
		d.report(Progress{Done: i + 1, Total: len(paths), Path: path, Record: r})
	}
	return records, nil
}

func (d *Driver) extractParallel(ctx context.Context, paths []string) (record.RecordSet, error) {
	results := make([]record.Record, len(paths))
	finished := make([]bool, len(paths))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			r, err := d.extractDocument(gctx, path)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			results[i] = r
			finished[i] = true
			done++
			d.report(Progress{Done: done, Total: len(paths), Path: path, Record: r})
			return nil
		})
	}

	waitErr := g.Wait()

	records := make(record.RecordSet, 0, len(paths))
	for i, r := range results {
		if finished[i] {
			records = append(records, r)
		}
	}

	if err := ctx.Err(); err != nil {
		return records, err
	}
	return records, waitErr
}

func (d *Driver) report(p Progress) {
	if d.progress != nil {
		d.progress(p)
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/track-assets/internal/config"
	"github.com/pfrederiksen/track-assets/internal/cover"
	"github.com/pfrederiksen/track-assets/internal/infobox"
	"github.com/pfrederiksen/track-assets/internal/logger"
	"github.com/pfrederiksen/track-assets/internal/manifest"
	"github.com/pfrederiksen/track-assets/internal/scraper"
	"github.com/pfrederiksen/track-assets/internal/storage"
)

// PageOpener streams a reference page. *scraper.Fetcher implements it.
type PageOpener interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// ImageDownloader saves an image and returns the written path. *cover.Downloader implements it.
type ImageDownloader interface {
	Download(ctx context.Context, imageURL, dir, name string) (string, error)
}

// DescriptorWriter persists a row's fields. *storage.Store implements it.
type DescriptorWriter interface {
	Dir() string
	WriteDescriptor(name string, v any) (string, error)
}

// Deps are the collaborators a Pipeline performs I/O through
type Deps struct {
	Pages   PageOpener
	Images  ImageDownloader
	Store   DescriptorWriter
	Locator infobox.Locator
	Logger  *logger.Logger
	Metrics *logger.Metrics
}

// Pipeline processes manifest rows into artifacts
type Pipeline struct {
	cfg     config.Config
	pages   PageOpener
	images  ImageDownloader
	store   DescriptorWriter
	locator infobox.Locator
	log     *logger.Logger
	metrics *logger.Metrics
}

// New creates a Pipeline. cfg is copied; later changes to the caller's value
// have no effect. A nil Locator defaults to infobox.FirstTable, nil Logger and
// Metrics to the package defaults.
func New(cfg config.Config, deps Deps) *Pipeline {
	p := &Pipeline{
		cfg:     cfg,
		pages:   deps.Pages,
		images:  deps.Images,
		store:   deps.Store,
		locator: deps.Locator,
		log:     deps.Logger,
		metrics: deps.Metrics,
	}
	if p.locator == nil {
		p.locator = infobox.FirstTable{}
	}
	if p.log == nil {
		p.log = logger.Default()
	}
	if p.metrics == nil {
		p.metrics = logger.DefaultMetrics()
	}
	return p
}

// NewFromConfig wires a Pipeline with the HTTP fetcher, image downloader and
// file store described by cfg. The output directory is created here, before
// any row is processed.
func NewFromConfig(cfg config.Config) (*Pipeline, error) {
	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	fetcher := scraper.New(cfg.UserAgent, cfg.HTTPTimeout)
	metrics := logger.DefaultMetrics()

	return New(cfg, Deps{
		Pages:   fetcher,
		Images:  cover.NewDownloader(fetcher, cfg.DefaultExt).WithMetrics(metrics),
		Store:   store,
		Metrics: metrics,
	}), nil
}

// Run processes every row of m in order and returns once all rows are
// terminal. report, if non-nil, is called with each outcome as it is reached.
func (p *Pipeline) Run(ctx context.Context, m *manifest.Manifest, report func(Outcome)) *Summary {
	summary := &Summary{
		RunID:         uuid.NewString(),
		StartedAt:     time.Now().UTC(),
		OutputDir:     p.store.Dir(),
		ManifestSkips: m.Skips,
	}

	p.log.Info("Starting run", logger.Fields{
		"run_id":     summary.RunID,
		"rows":       len(m.Rows),
		"output_dir": summary.OutputDir,
	})

	// sanitized name -> track name whose artifacts are on disk
	claimed := make(map[string]string, len(m.Rows))

	for _, row := range m.Rows {
		var outcome Outcome

		name := storage.SanitizeName(row.Name)
		if owner, taken := claimed[name]; taken {
			outcome = skipped(row, Pending, fmt.Errorf("%w with %q", ErrNameCollision, owner))
		} else {
			outcome = p.safeProcess(ctx, row)
			if name != "" && outcome.wroteFiles() {
				claimed[name] = row.Name
			}
		}

		p.record(outcome)
		summary.add(outcome)
		if report != nil {
			report(outcome)
		}
	}

	summary.FinishedAt = time.Now().UTC()

	p.log.Info("Run finished", logger.Fields{
		"run_id":  summary.RunID,
		"done":    summary.Done,
		"skipped": summary.Skipped,
		"images":  summary.Images,
	})

	return summary
}

// safeProcess converts a panic inside ProcessRow into a skip
func (p *Pipeline) safeProcess(ctx context.Context, row manifest.Row) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = skipped(row, Pending, fmt.Errorf("panic: %v", r))
		}
	}()
	return p.ProcessRow(ctx, row)
}

// record logs a terminal outcome and updates the metrics
func (p *Pipeline) record(o Outcome) {
	fields := logger.Fields{
		"track": o.Row.Name,
		"url":   o.Row.URL,
	}

	switch o.State {
	case Done:
		p.metrics.IncrCounter("rows.done")
		fields["json"] = o.Artifact.JSONPath
		if o.Artifact.ImagePath != "" {
			fields["image"] = o.Artifact.ImagePath
		}
		p.log.Info("Generated JSON", fields)
	case Skipped:
		p.metrics.IncrCounter("rows.skipped")
		fields["stage"] = o.Stage.String()
		p.log.Error("Error processing row", fields, o.Err)
	}
}

// ProcessRow takes one row from Pending to a terminal state. All I/O goes
// through the Pipeline's collaborators.
func (p *Pipeline) ProcessRow(ctx context.Context, row manifest.Row) Outcome {
	if row.Name == "" || row.URL == "" {
		return skipped(row, Pending, ErrMissingFields)
	}
	name := storage.SanitizeName(row.Name)

	// Fetching
	start := time.Now()
	body, err := p.pages.Open(ctx, row.URL)
	if err != nil {
		return skipped(row, Fetching, fmt.Errorf("fetching page %s: %w", row.URL, err))
	}

	// Parsing
	doc, err := scraper.Parse(body)
	body.Close()
	p.metrics.RecordTiming("page.fetch", time.Since(start))
	if err != nil {
		return skipped(row, Parsing, err)
	}

	// Extracting
	fields := infobox.Extract(doc, p.locator)
	href, hasImage := infobox.ImageLink(doc, p.locator)

	// Writing
	artifact := &Artifact{Name: name}
	imageErr := ErrNoImageLink
	if hasImage {
		artifact.ImagePath, imageErr = p.downloadImage(ctx, href, name)
	}
	if imageErr != nil {
		if errors.Is(imageErr, ErrNoImageLink) {
			p.metrics.IncrCounter("images.missing")
		} else {
			p.metrics.IncrCounter("images.failed")
		}
		p.log.Warn("No image downloaded", logger.Fields{
			"track":  row.Name,
			"href":   href,
			"reason": imageErr.Error(),
		})
	} else {
		p.metrics.IncrCounter("images.downloaded")
		p.log.Info("Downloaded image", logger.Fields{
			"track": row.Name,
			"image": artifact.ImagePath,
		})
	}

	artifact.JSONPath, err = p.store.WriteDescriptor(name, fields)
	if err != nil {
		outcome := skipped(row, Writing, err)
		outcome.Artifact = artifact
		return outcome
	}

	return done(row, artifact, imageErr)
}

func (p *Pipeline) downloadImage(ctx context.Context, href, name string) (string, error) {
	imageURL, err := cover.Resolve(href, p.cfg.BaseOrigin)
	if err != nil {
		return "", err
	}

	path, err := p.images.Download(ctx, imageURL, p.store.Dir(), name)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", imageURL, err)
	}
	return path, nil
}

package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/repositories"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/services"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/markdown"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/storage"
)

// SinkFailurePolicy decides whether a sink failure degrades the result or
// fails the whole request.
type SinkFailurePolicy string

const (
	// SinkFailureSoft records a warning and returns the job without a
	// location ("artifact not available").
	SinkFailureSoft SinkFailurePolicy = "soft"
	// SinkFailureHard surfaces the sink failure to the caller.
	SinkFailureHard SinkFailurePolicy = "hard"
)

// Service runs the scrape pipelines end to end: fetch, extract, embed,
// render, persist, record.
type Service struct {
	fetcher    *Fetcher
	extractor  *Extractor
	embedder   *Embedder
	renderer   *markdown.Renderer
	crawler    services.Crawler
	sink       services.ArtifactSink
	jobs       repositories.JobStore
	sinkPolicy SinkFailurePolicy
	logger     *slog.Logger
}

// NewService creates a scrape service. crawler may be nil when the
// enterprise pipeline is not configured.
func NewService(
	fetcher *Fetcher,
	embedder *Embedder,
	crawler services.Crawler,
	sink services.ArtifactSink,
	jobs repositories.JobStore,
	sinkPolicy SinkFailurePolicy,
	logger *slog.Logger,
) *Service {
	return &Service{
		fetcher:    fetcher,
		extractor:  NewExtractor(),
		embedder:   embedder,
		renderer:   &markdown.Renderer{},
		crawler:    crawler,
		sink:       sink,
		jobs:       jobs,
		sinkPolicy: sinkPolicy,
		logger:     logger,
	}
}

// Scrape fetches the page at url, extracts its content, and persists the
// rendered Markdown artifact. Validation failures and primary-document
// fetch failures abort the operation; per-image failures only produce
// warnings on the returned job.
func (s *Service) Scrape(ctx context.Context, rawURL string) (*models.Job, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Extract(html, rawURL)
	if err != nil {
		return nil, fmt.Errorf("extracting content: %w", err)
	}

	result := &models.ExtractionResult{}
	result.Nodes = append(result.Nodes, &models.TextNode{Text: extracted.Text})
	for _, t := range extracted.Tables {
		result.Nodes = append(result.Nodes, t)
	}

	images, warnings := s.embedder.EmbedAll(ctx, extracted.Images)
	for _, img := range images {
		result.Nodes = append(result.Nodes, img)
	}
	result.Warnings = append(result.Warnings, warnings...)

	doc := s.renderer.Render(result)

	job := &models.Job{
		ID:         uuid.NewString(),
		Kind:       models.JobKindScrape,
		SourceURL:  rawURL,
		StorageKey: storage.ScrapedMarkdownKey,
		Warnings:   result.Warnings,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.persist(ctx, job, []byte(doc)); err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("recording job: %w", err)
	}

	s.logger.Info("scrape completed",
		"job_id", job.ID,
		"url", rawURL,
		"images", len(images),
		"tables", len(extracted.Tables),
		"warnings", len(job.Warnings),
	)

	return job, nil
}

// ScrapeEnterprise runs the managed-crawler pipeline: the actor renders the
// page in a headless browser, and every crawled page contributes its text
// and images to the artifact. Images are copied into blob storage and
// referenced from the Markdown instead of inline-embedded.
func (s *Service) ScrapeEnterprise(ctx context.Context, rawURL string) (*models.Job, error) {
	if s.crawler == nil {
		return nil, &domain.ValidationError{Message: "enterprise scraping is not configured"}
	}
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	pages, err := s.crawler.Crawl(ctx, rawURL)
	if err != nil {
		return nil, &domain.NetworkError{Message: fmt.Sprintf("crawling %s: %v", rawURL, err)}
	}
	if len(pages) == 0 {
		return nil, &domain.NetworkError{Message: fmt.Sprintf("crawler returned no pages for %s", rawURL)}
	}

	result := &models.ExtractionResult{}
	imageCount := 0
	for _, page := range pages {
		if page.Text != "" {
			result.Nodes = append(result.Nodes, &models.TextNode{Text: page.Text})
		}
		for _, imgURL := range page.Images {
			imageCount++
			stored, err := s.copyImage(ctx, imgURL, imageCount)
			if err != nil {
				s.logger.Warn("dropping crawled image", "url", imgURL, "error", err)
				result.AddWarning("failed to store image %s", imgURL)
				continue
			}
			result.Nodes = append(result.Nodes, &models.ImageNode{
				Alt:     fmt.Sprintf("Image %d", imageCount),
				Payload: &models.Reference{URL: stored},
			})
		}
	}

	doc := s.renderer.Render(result)

	job := &models.Job{
		ID:         uuid.NewString(),
		Kind:       models.JobKindEnterpriseScrape,
		SourceURL:  rawURL,
		StorageKey: storage.EnterpriseMarkdownKey,
		Warnings:   result.Warnings,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.persist(ctx, job, []byte(doc)); err != nil {
		return nil, err
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("recording job: %w", err)
	}

	s.logger.Info("enterprise scrape completed",
		"job_id", job.ID,
		"url", rawURL,
		"pages", len(pages),
		"warnings", len(job.Warnings),
	)

	return job, nil
}

// LatestMarkdown returns the newest markdown artifact stored for the given
// scrape pipeline.
func (s *Service) LatestMarkdown(ctx context.Context, enterprise bool) (*models.Artifact, error) {
	prefix := storage.WebOpenSourcePrefix
	if enterprise {
		prefix = storage.WebEnterprisePrefix
	}

	objects, err := s.sink.List(ctx, prefix)
	if err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("listing artifacts: %v", err)}
	}

	var latest *models.Artifact
	for i := range objects {
		obj := objects[i]
		if !strings.HasSuffix(obj.Filename, ".md") {
			continue
		}
		if latest == nil || obj.LastModified.After(latest.LastModified) {
			latest = &obj
		}
	}
	if latest == nil {
		return nil, &domain.NotFoundError{Message: "no markdown artifacts found"}
	}
	return latest, nil
}

// persist writes the artifact through the sink, honoring the configured
// failure policy.
func (s *Service) persist(ctx context.Context, job *models.Job, doc []byte) error {
	location, err := s.sink.Put(ctx, job.StorageKey, doc, "text/markdown")
	if err != nil {
		if s.sinkPolicy == SinkFailureHard {
			return &domain.SinkError{Message: fmt.Sprintf("storing artifact: %v", err)}
		}
		s.logger.Error("artifact sink failed, continuing with degraded result",
			"key", job.StorageKey,
			"error", err,
		)
		job.Warnings = append(job.Warnings, "artifact not available: storage failed")
		return nil
	}
	job.Location = location
	return nil
}

// copyImage downloads one crawled image and re-uploads it to blob storage,
// returning the stored location.
func (s *Service) copyImage(ctx context.Context, imgURL string, n int) (string, error) {
	data, err := s.fetcher.Fetch(ctx, imgURL)
	if err != nil {
		return "", err
	}

	ext := ".jpg"
	if parsed, err := url.Parse(imgURL); err == nil {
		if e := strings.ToLower(path.Ext(parsed.Path)); e != "" {
			ext = e
		}
	}
	key := storage.EnterpriseImageKey(fmt.Sprintf("image_%d%s", n, ext))
	return s.sink.Put(ctx, key, data, mimeTypeFromURL(imgURL))
}

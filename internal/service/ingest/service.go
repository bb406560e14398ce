// Package ingest handles document uploads and their conversion to markdown.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/models"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/repositories"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/domain/services"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/markdown"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/service/convert"
	"github.com/BigDataTeam5/Automated-Document-Processing-and-Markdown-Generation-System/internal/storage"
)

// Conversion service identifiers accepted by Convert.
const (
	ServiceOpenSource = "opensource"
	ServiceAzure      = "azure"
)

// presignExpiry is how long returned object URLs remain valid.
const presignExpiry = time.Hour

// Limits bounds what a single upload may contain.
type Limits struct {
	// MaxUploadBytes caps the uploaded file size. Zero disables the check.
	MaxUploadBytes int64
	// MaxPDFPages caps the page count of PDF uploads. Zero disables the
	// check.
	MaxPDFPages int
}

// Listing groups stored artifacts by pipeline area.
type Listing struct {
	RawInputs       []models.Artifact `json:"raw_inputs"`
	Markdown        []models.Artifact `json:"markdown_outputs"`
	ParsedData      []models.Artifact `json:"parsed_data"`
	Enterprise      []models.Artifact `json:"enterprise_outputs"`
	ScrapedWeb      []models.Artifact `json:"scraped_web"`
	MarkdownFolders []string          `json:"markdown_folders"`
}

// Service accepts uploads, stores the raw input, and converts stored
// documents to markdown on request.
type Service struct {
	sink     services.ArtifactSink
	jobs     repositories.JobStore
	registry *convert.Registry
	pdf      *convert.PDFConverter
	analyzer services.LayoutAnalyzer
	renderer *markdown.Renderer
	limits   Limits
	logger   *slog.Logger
}

// NewService creates an ingest service. analyzer may be nil when the
// enterprise conversion pipeline is not configured.
func NewService(
	sink services.ArtifactSink,
	jobs repositories.JobStore,
	analyzer services.LayoutAnalyzer,
	limits Limits,
	logger *slog.Logger,
) *Service {
	return &Service{
		sink:     sink,
		jobs:     jobs,
		registry: convert.NewRegistry(),
		pdf:      convert.NewPDFConverter(),
		analyzer: analyzer,
		renderer: &markdown.Renderer{Title: "Extracted PDF Content"},
		limits:   limits,
		logger:   logger,
	}
}

// Upload validates and stores an uploaded document, returning the job that
// tracks it. contentType is the type declared by the client for the file
// part; it must agree with the filename extension. The raw bytes are
// persisted to blob storage and also staged on local disk so a later
// conversion can skip the download.
func (s *Service) Upload(ctx context.Context, filename, contentType string, content []byte) (*models.Job, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if s.registry.GetConverter(ext) == nil {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("unsupported file type %q; supported: %s",
				ext, strings.Join(sortedExtensions(s.registry), ", ")),
		}
	}

	if err := checkDeclaredType(ext, contentType); err != nil {
		return nil, err
	}

	if s.limits.MaxUploadBytes > 0 && int64(len(content)) > s.limits.MaxUploadBytes {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("file exceeds the %d byte limit", s.limits.MaxUploadBytes),
		}
	}

	if ext == ".pdf" && s.limits.MaxPDFPages > 0 {
		pages, err := convert.PageCount(content)
		if err != nil {
			return nil, &domain.ValidationError{Message: fmt.Sprintf("unreadable PDF: %v", err)}
		}
		if pages > s.limits.MaxPDFPages {
			return nil, &domain.ValidationError{
				Message: fmt.Sprintf("PDF has %d pages, limit is %d", pages, s.limits.MaxPDFPages),
			}
		}
	}

	job := &models.Job{
		ID:         uuid.NewString(),
		Kind:       models.JobKindUpload,
		Filename:   filepath.Base(filename),
		StorageKey: storage.RawInputKey(filename),
		CreatedAt:  time.Now().UTC(),
	}

	location, err := s.sink.Put(ctx, job.StorageKey, content, contentTypeFor(ext))
	if err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("storing upload: %v", err)}
	}
	job.Location = location

	if local, err := stageLocal(content, ext); err != nil {
		s.logger.Warn("failed to stage upload locally", "filename", job.Filename, "error", err)
		job.Warnings = append(job.Warnings, "local staging failed, conversion will re-download")
	} else {
		job.LocalPath = local
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("recording job: %w", err)
	}

	s.logger.Info("upload stored",
		"job_id", job.ID,
		"filename", job.Filename,
		"bytes", len(content),
	)

	return job, nil
}

// LatestUpload returns the most recent upload job with a fresh object URL.
func (s *Service) LatestUpload(ctx context.Context) (*models.Job, error) {
	job, err := s.jobs.Latest(ctx, models.JobKindUpload)
	if err != nil {
		return nil, err
	}

	location, err := s.sink.PresignGet(ctx, job.StorageKey, presignExpiry)
	if err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("signing object URL: %v", err)}
	}
	job.Location = location

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("recording job: %w", err)
	}
	return job, nil
}

// Convert converts a previously uploaded document to markdown using the
// named conversion service and stores the result. An empty jobID converts
// the most recent upload.
func (s *Service) Convert(ctx context.Context, jobID, serviceName string) (*models.Job, error) {
	source, err := s.resolveUpload(ctx, jobID)
	if err != nil {
		return nil, err
	}

	content, err := s.loadContent(ctx, source)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(source.Filename))
	doc, warnings, err := s.runConversion(ctx, serviceName, ext, content)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:        uuid.NewString(),
		Kind:      models.JobKindConvert,
		Filename:  strings.TrimSuffix(source.Filename, filepath.Ext(source.Filename)) + ".md",
		Warnings:  warnings,
		CreatedAt: time.Now().UTC(),
	}
	job.StorageKey = storage.PDFMarkdownKey(job.ID, job.Filename)

	location, err := s.sink.Put(ctx, job.StorageKey, []byte(doc), "text/markdown")
	if err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("storing artifact: %v", err)}
	}
	job.Location = location

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("recording job: %w", err)
	}

	s.logger.Info("conversion completed",
		"job_id", job.ID,
		"source_job_id", source.ID,
		"service", serviceName,
		"warnings", len(job.Warnings),
	)

	return job, nil
}

// ListArtifacts returns the stored objects grouped by pipeline area.
func (s *Service) ListArtifacts(ctx context.Context) (*Listing, error) {
	listing := &Listing{}

	var err error
	if listing.RawInputs, err = s.sink.List(ctx, storage.RawInputsPrefix); err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("listing raw inputs: %v", err)}
	}
	if listing.Markdown, err = s.sink.List(ctx, storage.PDFMarkdownPrefix); err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("listing markdown outputs: %v", err)}
	}
	if listing.ParsedData, err = s.sink.List(ctx, storage.PDFParsedPrefix); err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("listing parsed data: %v", err)}
	}
	if listing.Enterprise, err = s.sink.List(ctx, storage.PDFEnterprisePrefix); err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("listing enterprise outputs: %v", err)}
	}
	if listing.ScrapedWeb, err = s.sink.List(ctx, "scraped_data/"); err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("listing scraped artifacts: %v", err)}
	}
	if listing.MarkdownFolders, err = s.sink.ListFolders(ctx, storage.PDFMarkdownPrefix); err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("listing markdown folders: %v", err)}
	}

	return listing, nil
}

// LatestMarkdown returns the newest converted markdown artifact.
func (s *Service) LatestMarkdown(ctx context.Context) (*models.Artifact, error) {
	objects, err := s.sink.List(ctx, storage.PDFMarkdownPrefix)
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

// resolveUpload looks up the conversion source: a specific upload job, or
// the most recent one when jobID is empty.
func (s *Service) resolveUpload(ctx context.Context, jobID string) (*models.Job, error) {
	var job *models.Job
	var err error
	if jobID == "" {
		job, err = s.jobs.Latest(ctx, models.JobKindUpload)
	} else {
		job, err = s.jobs.Get(ctx, jobID)
	}
	if err != nil {
		return nil, err
	}
	if job.Kind != models.JobKindUpload {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("job %s is not an upload", job.ID)}
	}
	return job, nil
}

// loadContent reads the source document, preferring the locally staged copy
// over a round trip to blob storage.
func (s *Service) loadContent(ctx context.Context, job *models.Job) ([]byte, error) {
	if job.LocalPath != "" {
		if content, err := os.ReadFile(job.LocalPath); err == nil {
			return content, nil
		}
		s.logger.Warn("staged copy unavailable, downloading from storage",
			"job_id", job.ID, "path", job.LocalPath)
	}

	content, err := s.sink.Get(ctx, job.StorageKey)
	if err != nil {
		return nil, &domain.SinkError{Message: fmt.Sprintf("retrieving upload: %v", err)}
	}
	return content, nil
}

// runConversion dispatches to the named conversion backend and returns the
// markdown document plus any extraction warnings.
func (s *Service) runConversion(ctx context.Context, serviceName, ext string, content []byte) (string, []string, error) {
	switch serviceName {
	case "", ServiceOpenSource:
		if ext == ".pdf" {
			result, err := s.pdf.ExtractNodes(ctx, content)
			if err != nil {
				return "", nil, fmt.Errorf("extracting PDF content: %w", err)
			}
			return s.renderer.Render(result), result.Warnings, nil
		}
		doc, err := s.registry.Convert(ctx, "source"+ext, content)
		if err != nil {
			return "", nil, &domain.ValidationError{Message: err.Error()}
		}
		return doc, nil, nil

	case ServiceAzure:
		if s.analyzer == nil {
			return "", nil, &domain.ValidationError{Message: "enterprise conversion is not configured"}
		}
		result, err := s.analyzer.Analyze(ctx, content, contentTypeFor(ext))
		if err != nil {
			return "", nil, &domain.NetworkError{Message: fmt.Sprintf("analyzing document: %v", err)}
		}
		return s.renderer.Render(result), result.Warnings, nil

	default:
		return "", nil, &domain.ValidationError{
			Message: fmt.Sprintf("unknown conversion service %q; use %q or %q",
				serviceName, ServiceOpenSource, ServiceAzure),
		}
	}
}

// checkDeclaredType rejects uploads whose declared content type contradicts
// the filename extension. Media type parameters are ignored. An empty or
// generic application/octet-stream declaration passes; markdown additionally
// accepts text/plain.
func checkDeclaredType(ext, declared string) error {
	if declared == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return &domain.ValidationError{Message: fmt.Sprintf("invalid content type %q", declared)}
	}
	if mediaType == "application/octet-stream" {
		return nil
	}

	expected := contentTypeFor(ext)
	if mediaType == expected {
		return nil
	}
	if (ext == ".md" || ext == ".markdown") && mediaType == "text/plain" {
		return nil
	}
	return &domain.ValidationError{
		Message: fmt.Sprintf("content type %q does not match a %s upload, expected %s",
			mediaType, ext, expected),
	}
}

// stageLocal writes the upload to a temp file for later conversion.
func stageLocal(content []byte, ext string) (string, error) {
	f, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func sortedExtensions(r *convert.Registry) []string {
	exts := r.SupportedExtensions()
	sort.Strings(exts)
	return exts
}

func contentTypeFor(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".html", ".htm":
		return "text/html"
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt", ".text":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// Package storage defines the blob-storage key scheme shared by the
// ingestion pipelines.
package storage

import "path"

// Key prefixes, mirroring the layout consumers already depend on.
const (
	RawInputsPrefix         = "RawInputs/"
	PDFMarkdownPrefix       = "pdf_processing_pipeline/markdown_outputs/"
	PDFParsedPrefix         = "pdf_processing_pipeline/pdf_os_pipeline/parsed_data/"
	PDFEnterprisePrefix     = "pdf_processing_pipeline/pdf_enterprise_pipeline/"
	WebOpenSourcePrefix     = "scraped_data/scraped_os_data/"
	WebEnterprisePrefix     = "scraped_data/scraped_en_data/"
	WebEnterpriseImagePrefix = "scraped_data/scraped_en_data/images/"
)

// ScrapedMarkdownKey is the fixed destination of the open-source scrape
// artifact. Overwritten on each invocation; job records keep per-request
// addressability.
const ScrapedMarkdownKey = WebOpenSourcePrefix + "scraped_content.md"

// EnterpriseMarkdownKey is the fixed destination of the enterprise scrape
// artifact.
const EnterpriseMarkdownKey = WebEnterprisePrefix + "scraped_content.md"

// RawInputKey returns the storage key for an uploaded source file.
func RawInputKey(filename string) string {
	return RawInputsPrefix + path.Base(filename)
}

// PDFMarkdownKey returns the storage key for a converted document, grouped
// into a per-job folder.
func PDFMarkdownKey(jobID, filename string) string {
	return PDFMarkdownPrefix + jobID + "/" + path.Base(filename)
}

// EnterpriseImageKey returns the storage key for an image copied during an
// enterprise scrape.
func EnterpriseImageKey(name string) string {
	return WebEnterpriseImagePrefix + path.Base(name)
}

package config

const (
	// MaxPDFSizeMB is the maximum accepted size of an uploaded PDF.
	MaxPDFSizeMB = 5

	// MaxPDFPages is the maximum page count of an uploaded PDF.
	MaxPDFPages = 5

	// MaxUploadBytes caps any uploaded file.
	MaxUploadBytes = MaxPDFSizeMB << 20

	// MaxUploadBodyBytes caps the whole multipart request body, leaving
	// headroom for form encoding overhead.
	MaxUploadBodyBytes = MaxUploadBytes + (1 << 20)
)

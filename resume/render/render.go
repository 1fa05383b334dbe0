package render

import (
	"errors"
	"fmt"
	"strings"

	"jobforge-backend/internal/shared/util"
	"jobforge-backend/resume/model"
)

// Format names a supported output document format.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned for any format outside the supported
// set. Callers must surface it rather than fall back to a default.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat normalizes a raw format string. Unknown values fail with
// ErrUnsupportedFormat.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatDOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/pdf"
	}
}

// Extension returns the file extension without a leading dot.
func (f Format) Extension() string { return string(f) }

// Artifact is a rendered document ready to serve.
type Artifact struct {
	Data     []byte
	Format   Format
	FileName string
}

// Render produces the document bytes for a resume in the given format.
// Rendering is deterministic: the same resume and format always yield
// identical bytes.
func Render(resume model.TailoredResume, format Format) ([]byte, error) {
	if err := resume.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	switch format {
	case FormatPDF:
		return renderPDF(resume)
	case FormatDOCX:
		return renderDOCX(resume)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SuggestFileName builds the download name resume_<company>.<ext> from a
// company label. Labels that slug down to nothing fall back to a generic
// name.
func SuggestFileName(company string, format Format) string {
	slug := util.FileSlug(company)
	if slug == "" {
		slug = "company"
	}
	return "resume_" + slug + "." + format.Extension()
}

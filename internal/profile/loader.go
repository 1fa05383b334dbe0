package profile

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"jobforge-backend/internal/shared/telemetry"
)

var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".md":   true,
}

// Load scans dir in name order and returns a profile built from the
// first resume file whose text can be extracted. Files that cannot be
// read are skipped with a log line. A missing dir is created so the
// operator has somewhere to drop a resume.
func Load(dir string, identity Identity) (Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
			return Profile{}, fmt.Errorf("profile dir %s: %w", dir, mkErr)
		}
		return Profile{}, fmt.Errorf("no resume files in %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !supportedExtensions[ext] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			telemetry.Error("profile.file_skipped", map[string]any{"file": entry.Name(), "error": err.Error()})
			continue
		}
		text, err := extractText(ext, data)
		if err != nil {
			telemetry.Error("profile.file_skipped", map[string]any{"file": entry.Name(), "error": err.Error()})
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		telemetry.Info("profile.loaded", map[string]any{"file": entry.Name(), "chars": len(text)})
		return Profile{
			Identity:   identity,
			ResumeText: text,
			Source:     entry.Name(),
		}, nil
	}

	return Profile{}, fmt.Errorf("no usable resume found in %s", dir)
}

func extractText(ext string, data []byte) (string, error) {
	switch ext {
	case ".txt", ".md":
		return string(data), nil
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported extension %s", ext)
	}
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()
	return flattenDocumentXML(doc.Editable().GetContent()), nil
}

// flattenDocumentXML reduces word/document.xml markup to plain text with
// one line per paragraph. Malformed markup falls back to the raw string.
func flattenDocumentXML(content string) string {
	decoder := xml.NewDecoder(strings.NewReader(content))
	var b strings.Builder
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return content
		}
		switch t := token.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(b.String())
}

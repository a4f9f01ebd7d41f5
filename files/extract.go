package files

import (
	"fmt"
	"path/filepath"
	"strings"

	"carf-backend/apierr"
	"carf-backend/metrics"
)

// MaxExcerptChars bounds every excerpt handed to the prompt assembler.
const MaxExcerptChars = 1000

// Format is the closed set of document kinds the extractor dispatches on.
type Format int

const (
	FormatUnsupported Format = iota
	FormatPDF
	FormatDOCX
	FormatXLSX
	FormatCSV
)

var formatNames = [...]string{
	FormatUnsupported: "unsupported",
	FormatPDF:         "pdf",
	FormatDOCX:        "docx",
	FormatXLSX:        "xlsx",
	FormatCSV:         "csv",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return formatNames[FormatUnsupported]
	}
	return formatNames[f]
}

// FormatOf classifies a path by its (case-insensitive) extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case ".xlsx":
		return FormatXLSX
	case ".csv":
		return FormatCSV
	default:
		return FormatUnsupported
	}
}

// Status tells whether an excerpt holds document content or a degraded message.
type Status int

const (
	StatusExtracted Status = iota
	StatusUnsupported
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusExtracted:
		return "extracted"
	case StatusUnsupported:
		return "unsupported"
	default:
		return "failed"
	}
}

// Excerpt is the bounded text of a document. When Status is not
// StatusExtracted, Text is a descriptive message meant to stand in for the
// document content.
type Excerpt struct {
	Text      string
	Format    Format
	Extension string
	MIME      string
	Status    Status
	Err       error
}

// Code returns the error code of a degraded excerpt, or "" when extracted.
func (e Excerpt) Code() apierr.Code {
	switch e.Status {
	case StatusUnsupported:
		return apierr.UnsupportedDocumentType
	case StatusFailed:
		return apierr.DocumentReadFailure
	default:
		return ""
	}
}

// Usable reports whether the excerpt carries actual document content.
func (e Excerpt) Usable() bool {
	return e.Status == StatusExtracted && strings.TrimSpace(e.Text) != ""
}

// Extract never returns an error: unsupported types and read failures come
// back as descriptive text.
func Extract(path, mimeType string) (ex Excerpt) {
	format := FormatOf(path)
	ex = Excerpt{
		Format:    format,
		Extension: strings.ToLower(filepath.Ext(path)),
		MIME:      mimeType,
	}
	defer func() {
		// rsc.io/pdf and the zip/xml readers may panic on hostile input.
		if r := recover(); r != nil {
			ex = readFailure(ex, path, fmt.Errorf("%v", r))
		}
		ex.Text = truncate(ex.Text, MaxExcerptChars)
		metrics.ObserveExtraction(ex.Format.String(), ex.Status.String())
	}()

	var (
		text string
		err  error
	)
	switch format {
	case FormatPDF:
		text, err = firstPageText(path)
	case FormatDOCX:
		text, err = docxText(path)
	case FormatXLSX:
		text, err = spreadsheetSample(path)
	case FormatCSV:
		text, err = csvSample(path)
	case FormatUnsupported:
		ex.Status = StatusUnsupported
		ex.Text = fmt.Sprintf("Tipo de arquivo '%s' não suportado pelo Agente de Produtividade.", ex.Extension)
		return ex
	}
	if err != nil {
		return readFailure(ex, path, err)
	}
	ex.Status = StatusExtracted
	ex.Text = text
	return ex
}

func readFailure(ex Excerpt, path string, err error) Excerpt {
	ex.Status = StatusFailed
	ex.Err = err
	ex.Text = fmt.Sprintf("Erro na leitura do arquivo %s: %v", path, err)
	return ex
}

// truncate cuts s to at most n characters without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

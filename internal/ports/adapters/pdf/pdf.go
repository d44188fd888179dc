package pdf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/forPelevin/ytsum/internal/types"
	"github.com/go-pdf/fpdf"
)

const (
	DocumentTitle = "YouTube Video Transcript and Summary"

	coreFont    = "Arial"
	utf8Font    = "ReportUTF8"
	lineHeight  = 10.0
	titleSize   = 12.0
	bodySize    = 10.0
	sectionSkip = 10.0
)

// epoch stamps documents when no creation time is given, keeping output reproducible.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type Options struct {
	// CreatedAt is written as the document creation and modification date.
	CreatedAt time.Time
	// FontPath is an optional UTF-8 TrueType font. Core fonts only cover cp1252.
	FontPath string
	// Uncompressed disables stream compression.
	Uncompressed bool
}

type Writer struct {
	opts Options
}

func New(opts Options) *Writer {
	return &Writer{opts: opts}
}

// Write renders report and stores it at outputPath, creating parent directories.
func (w *Writer) Write(report types.Report, outputPath string) error {
	if strings.TrimSpace(outputPath) == "" {
		return errors.New("output path is empty")
	}

	doc, err := w.render(report)
	if err != nil {
		return err
	}

	f, err := createAtomic(outputPath)
	if err != nil {
		return err
	}
	if err := doc.Output(f); err != nil {
		f.abort()
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := f.commit(); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}
	return nil
}

func (w *Writer) render(report types.Report) (*fpdf.Fpdf, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(!w.opts.Uncompressed)
	doc.SetCatalogSort(true)
	created := w.opts.CreatedAt
	if created.IsZero() {
		created = epoch
	}
	doc.SetCreationDate(created)
	doc.SetModificationDate(created)
	doc.SetTitle(DocumentTitle, true)
	doc.SetAutoPageBreak(true, 15)

	family := coreFont
	tr := doc.UnicodeTranslatorFromDescriptor("")
	if w.opts.FontPath != "" {
		doc.AddUTF8Font(utf8Font, "", w.opts.FontPath)
		family = utf8Font
		tr = func(s string) string { return s }
	}

	doc.AddPage()

	doc.SetFont(family, "", titleSize)
	doc.CellFormat(0, lineHeight, tr(DocumentTitle), "", 1, "C", false, 0, "")
	doc.Ln(sectionSkip)

	doc.SetFont(family, "", bodySize)
	if title := strings.TrimSpace(report.Title); title != "" {
		doc.CellFormat(0, lineHeight, tr(title), "", 1, "C", false, 0, "")
	}
	doc.CellFormat(0, lineHeight, tr(report.URL), "", 1, "C", false, 0, "")
	doc.Ln(sectionSkip)

	doc.CellFormat(0, lineHeight, "Summary:", "", 1, "", false, 0, "")
	doc.MultiCell(0, lineHeight, tr(report.Summary), "", "", false)

	if report.IncludeTranscript && strings.TrimSpace(report.Transcript) != "" {
		doc.Ln(sectionSkip)
		doc.CellFormat(0, lineHeight, "Transcript:", "", 1, "", false, 0, "")
		doc.MultiCell(0, lineHeight, tr(report.Transcript), "", "", false)
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return doc, nil
}

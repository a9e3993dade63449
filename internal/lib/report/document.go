// Package report renders tenant reports as A4 PDFs and spreadsheet exports.
//
// Every PDF page carries the company header and a footer with the generation
// timestamp and "Página N de M".
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const (
	pageMargin   = 12.0
	footerHeight = 15.0
	rowHeight    = 6.5
	fontFamily   = "Helvetica"
)

// Align values for Column.Align.
const (
	AlignLeft   = "L"
	AlignCenter = "C"
	AlignRight  = "R"
)

// Header identifies who a report belongs to and when it was generated.
type Header struct {
	Empresa   string
	Documento string
	GeradoEm  time.Time
}

// Column is one column of a table. Width is in millimetres.
type Column struct {
	Title string
	Width float64
	Align string
}

// Document is a single report being rendered.
type Document struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	columns []Column
}

// NewDocument starts an A4 portrait document with title and subtitle on every page.
func NewDocument(h Header, title, subtitle string) *Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	d := &Document{
		pdf: pdf,
		// Core fonts are cp1252; accents need translating.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}

	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, footerHeight+5)
	pdf.AliasNbPages("")
	pdf.SetTitle(title, true)
	pdf.SetAuthor(h.Empresa, true)
	pdf.SetCreator("agro-backend", false)
	if !h.GeradoEm.IsZero() {
		pdf.SetCreationDate(h.GeradoEm)
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 13)
		pdf.CellFormat(0, 7, d.tr(title), "", 1, AlignLeft, false, 0, "")

		pdf.SetFont(fontFamily, "", 9)
		company := h.Empresa
		if h.Documento != "" {
			company += " - " + brfmt.FormatDocument(h.Documento)
		}
		if company != "" {
			pdf.CellFormat(0, 5, d.tr(company), "", 1, AlignLeft, false, 0, "")
		}
		if subtitle != "" {
			pdf.CellFormat(0, 5, d.tr(subtitle), "", 1, AlignLeft, false, 0, "")
		}

		y := pdf.GetY() + 1
		w, _ := pdf.GetPageSize()
		pdf.SetDrawColor(150, 150, 150)
		pdf.Line(pageMargin, y, w-pageMargin, y)
		pdf.Ln(4)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-footerHeight)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.SetTextColor(90, 90, 90)

		pdf.CellFormat(0, 10, d.tr("Gerado em "+brfmt.FormatDateTime(h.GeradoEm)), "", 0, AlignLeft, false, 0, "")
		pdf.SetX(pageMargin)
		pdf.CellFormat(0, 10, d.tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, AlignRight, false, 0, "")

		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	return d
}

// Section writes a bold section heading.
func (d *Document) Section(text string) {
	d.pdf.Ln(2)
	d.pdf.SetFont(fontFamily, "B", 11)
	d.pdf.CellFormat(0, 7, d.tr(text), "", 1, AlignLeft, false, 0, "")
}

// Field writes a "label: value" line.
func (d *Document) Field(label, value string) {
	d.pdf.SetFont(fontFamily, "B", 9)
	d.pdf.CellFormat(45, rowHeight, d.tr(label+":"), "", 0, AlignLeft, false, 0, "")
	d.pdf.SetFont(fontFamily, "", 9)
	d.pdf.CellFormat(0, rowHeight, d.tr(value), "", 1, AlignLeft, false, 0, "")
}

// Text writes a paragraph.
func (d *Document) Text(text string) {
	d.pdf.SetFont(fontFamily, "", 9)
	d.pdf.MultiCell(0, 5, d.tr(text), "", AlignLeft, false)
}

// Table starts a table. Its header row is repeated after every page break.
func (d *Document) Table(columns ...Column) {
	d.columns = columns
	d.tableHeader()
}

func (d *Document) tableHeader() {
	d.pdf.SetFont(fontFamily, "B", 8.5)
	d.pdf.SetFillColor(223, 232, 214)
	for _, c := range d.columns {
		d.pdf.CellFormat(c.Width, rowHeight+0.5, d.tr(c.Title), "1", 0, AlignCenter, true, 0, "")
	}
	d.pdf.Ln(-1)
}

// Row writes one table row. Missing cells are left blank.
func (d *Document) Row(cells ...string) {
	d.row(false, cells)
}

// TotalRow writes a bold, shaded row.
func (d *Document) TotalRow(cells ...string) {
	d.row(true, cells)
}

func (d *Document) row(total bool, cells []string) {
	_, pageHeight := d.pdf.GetPageSize()
	if d.pdf.GetY()+rowHeight > pageHeight-footerHeight-5 {
		d.pdf.AddPage()
		d.tableHeader()
	}

	style := ""
	if total {
		style = "B"
		d.pdf.SetFillColor(240, 240, 240)
	}
	d.pdf.SetFont(fontFamily, style, 8.5)

	for i, c := range d.columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		align := c.Align
		if align == "" {
			align = AlignLeft
		}
		d.pdf.CellFormat(c.Width, rowHeight, d.tr(text), "1", 0, align, total, 0, "")
	}
	d.pdf.Ln(-1)
}

// Empty writes a placeholder line for a report with no rows.
func (d *Document) Empty(text string) {
	d.pdf.SetFont(fontFamily, "I", 9)
	d.pdf.CellFormat(0, rowHeight*2, d.tr(text), "", 1, AlignCenter, false, 0, "")
}

// Bytes finishes the document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render pdf")
	}
	return buf.Bytes(), nil
}

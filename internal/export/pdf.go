package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/JonMunkholm/persons/internal/core"
)

// PDFOptions controls the page layout of PDF exports.
type PDFOptions struct {
	Title    string
	MarginMM float64
}

// DefaultPDFOptions is a landscape A4 page with 20mm margins.
var DefaultPDFOptions = PDFOptions{Title: "Persons List", MarginMM: 20}

// pdfColumn is one table column; Weight is its share of the usable width.
type pdfColumn struct {
	Header string
	Weight float64
	Value  func(p core.PersonResponse) string
}

var pdfColumns = []pdfColumn{
	{"Person Name", 35, func(p core.PersonResponse) string { return p.PersonName }},
	{"Email", 50, func(p core.PersonResponse) string { return p.Email }},
	{"Date of Birth", 25, func(p core.PersonResponse) string {
		if p.DateOfBirth == nil {
			return ""
		}
		return p.DateOfBirth.Format("02 Jan 2006")
	}},
	{"Age", 12, func(p core.PersonResponse) string {
		if p.Age == nil {
			return ""
		}
		return strconv.FormatFloat(*p.Age, 'f', -1, 64)
	}},
	{"Gender", 18, func(p core.PersonResponse) string { return string(p.Gender) }},
	{"Country", 30, func(p core.PersonResponse) string { return p.Country }},
	{"Address", 62, func(p core.PersonResponse) string { return p.Address }},
	{"Receive News Letters", 25, func(p core.PersonResponse) string {
		if p.ReceiveNewsLetters {
			return "Yes"
		}
		return "No"
	}},
}

const (
	pdfFont      = "Helvetica"
	pdfRowHeight = 7.0
)

// WritePDF renders persons as a landscape table. The column header row is
// repeated on every page and each page is numbered in the footer.
func WritePDF(w io.Writer, persons []core.PersonResponse, opts PDFOptions) error {
	if opts.MarginMM <= 0 {
		opts.MarginMM = DefaultPDFOptions.MarginMM
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(opts.MarginMM, opts.MarginMM, opts.MarginMM)
	pdf.SetAutoPageBreak(true, opts.MarginMM)
	pdf.AliasNbPages("")
	pdf.SetTitle(opts.Title, true)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := columnWidths(pdf, opts.MarginMM)

	pdf.SetHeaderFunc(func() {
		if opts.Title != "" {
			pdf.SetFont(pdfFont, "B", 14)
			pdf.CellFormat(0, 10, tr(opts.Title), "", 1, "L", false, 0, "")
		}
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(211, 211, 211)
		for i, c := range pdfColumns {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(c.Header), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 9)
	})

	pdf.SetFooterFunc(func() {
		pdf.SetY(-opts.MarginMM + 5)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	for _, p := range persons {
		for i, c := range pdfColumns {
			text := fitText(pdf, tr, c.Value(p), widths[i]-2)
			pdf.CellFormat(widths[i], pdfRowHeight, text, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

// columnWidths spreads the usable page width over the columns by weight.
func columnWidths(pdf *fpdf.Fpdf, margin float64) []float64 {
	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*margin

	var total float64
	for _, c := range pdfColumns {
		total += c.Weight
	}

	widths := make([]float64, len(pdfColumns))
	for i, c := range pdfColumns {
		widths[i] = usable * c.Weight / total
	}
	return widths
}

// fitText translates s for the core font and truncates it with an ellipsis
// until it fits in width. Truncation works on runes before translation.
func fitText(pdf *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	out := tr(s)
	if pdf.GetStringWidth(out) <= width {
		return out
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		out = tr(string(r) + "...")
		if pdf.GetStringWidth(out) <= width {
			break
		}
	}
	return out
}

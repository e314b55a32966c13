// Package report lays out the issues report as a PDF document.
package report

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/naka-gawa/github-issue-report/internal/chart"
	"github.com/naka-gawa/github-issue-report/internal/domain"
)

const (
	maxTitleLen  = 50
	maxLabels    = 3
	ellipsis     = "..."
	noLabels     = "-"
	noIssuesText = "No issues found in the specified date range."
)

// Input is everything the composer needs for one document.
type Input struct {
	Range      domain.DateRange
	Repository domain.Repository
	Summary    *domain.Summary
	// Contributors is the display order of Summary.Contributors.
	Contributors []*domain.ContributorStats
	Charts       chart.Set
}

type rgb struct{ r, g, b int }

var (
	colorTitle      = rgb{0x2C, 0x3E, 0x50}
	colorHeading    = rgb{0x34, 0x49, 0x5E}
	colorTeal       = rgb{0x4E, 0xCD, 0xC4}
	colorWhiteSmoke = rgb{0xF5, 0xF5, 0xF5}
	colorBeige      = rgb{0xF5, 0xF5, 0xDC}
	colorLightGrey  = rgb{0xD3, 0xD3, 0xD3}
	colorWhite      = rgb{0xFF, 0xFF, 0xFF}
	colorGrey       = rgb{0x80, 0x80, 0x80}
	colorBlack      = rgb{0, 0, 0}
)

// tableStyle mirrors the few knobs the report tables differ in.
type tableStyle struct {
	header         rgb
	headerFontSize float64
	bodyFontSize   float64
	rowFills       []rgb
	grid           rgb
	gridWidth      float64
}

var (
	summaryTableStyle = tableStyle{
		header: colorHeading, headerFontSize: 12, bodyFontSize: 10,
		rowFills: []rgb{colorBeige}, grid: colorBlack, gridWidth: 1.0 / 72,
	}
	contributorTableStyle = tableStyle{
		header: colorTeal, headerFontSize: 10, bodyFontSize: 10,
		rowFills: []rgb{colorLightGrey}, grid: colorBlack, gridWidth: 0.5 / 72,
	}
	issuesTableStyle = tableStyle{
		header: colorTitle, headerFontSize: 8, bodyFontSize: 8,
		rowFills: []rgb{colorWhite, colorLightGrey}, grid: colorGrey, gridWidth: 0.5 / 72,
	}
)

// Composer writes the report document. Units are inches on US Letter.
type Composer struct {
	logger *log.Logger
}

// NewComposer creates a new Composer instance.
func NewComposer(logger *log.Logger) *Composer {
	return &Composer{logger: logger}
}

// Compose builds the document and writes it to path.
// Nothing is written when layout fails.
func (c *Composer) Compose(in Input, path string) error {
	pdf := c.layout(in)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out report: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	c.logger.Printf("Wrote %d pages to %s.\n", pdf.PageCount(), path)
	return nil
}

// layout draws every section in memory. Each of the three parts starts on a new page.
func (c *Composer) layout(in Input) *fpdf.Fpdf {
	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(1, 1, 1)
	pdf.SetAutoPageBreak(true, 1)
	pdf.SetTitle("Issues Report - "+in.Range.String(), true)
	// Core fonts are cp1252; runes outside it are drawn as ".".
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	d := &document{pdf: pdf, tr: tr}

	pdf.AddPage()
	d.header(in)
	d.summary(in.Summary)
	d.charts(in.Charts)

	pdf.AddPage()
	d.contributors(in.Contributors, in.Charts.Contributors)

	pdf.AddPage()
	d.issues(in.Summary.Issues)
	return pdf
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *document) textColor(c rgb) { d.pdf.SetTextColor(c.r, c.g, c.b) }
func (d *document) fillColor(c rgb) { d.pdf.SetFillColor(c.r, c.g, c.b) }

// points converts a font size to a line height in inches.
func points(size float64) float64 { return size * 1.2 / 72 }

func (d *document) header(in Input) {
	d.pdf.SetFont("Helvetica", "B", 20)
	d.textColor(colorTitle)
	d.pdf.CellFormat(0, points(20), d.tr("Issues Report - "+in.Range.String()), "", 1, "C", false, 0, "")
	d.pdf.Ln(30.0/72 + 0.2)

	d.labelLine("Repository: ", in.Repository.String())
	d.labelLine("Date Range: ", in.Range.String())
	d.pdf.Ln(0.3)
}

func (d *document) labelLine(label, value string) {
	d.textColor(colorBlack)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(d.pdf.GetStringWidth(label), points(10), label, "", 0, "L", false, 0, "")
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.CellFormat(0, points(10), d.tr(value), "", 1, "L", false, 0, "")
}

func (d *document) heading(text string) {
	d.pdf.Ln(12.0 / 72)
	d.pdf.SetFont("Helvetica", "B", 14)
	d.textColor(colorHeading)
	d.pdf.CellFormat(0, points(14), d.tr(text), "", 1, "L", false, 0, "")
	d.pdf.Ln(12.0 / 72)
}

func (d *document) summary(s *domain.Summary) {
	d.heading("Summary")
	rows := [][]string{
		{"Total Issues", strconv.Itoa(s.Total)},
		{"Open Issues", strconv.Itoa(s.Open)},
		{"Closed Issues", strconv.Itoa(s.Closed)},
		{"Bugs", strconv.Itoa(s.Bugs)},
		{"Enhancements", strconv.Itoa(s.Enhancements)},
		{"Other", strconv.Itoa(s.Other)},
	}
	d.table([]string{"Metric", "Count"}, rows, []float64{3, 2}, summaryTableStyle)
	d.pdf.Ln(0.3)
}

func (d *document) charts(set chart.Set) {
	if set.Status == "" && set.Category == "" {
		return
	}
	d.heading("Visual Overview")
	if set.Status != "" {
		d.image("Issue Status Distribution", set.Status, 0.2)
	}
	if set.Category != "" {
		d.image("Issue Type Distribution", set.Category, 0.3)
	}
}

func (d *document) image(caption, path string, after float64) {
	d.textColor(colorBlack)
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(0, points(10), caption, "", 1, "L", false, 0, "")
	d.pdf.Ln(0.1)

	const w, h = 4.0, 2.0
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+h > pageH-bottom {
		d.pdf.AddPage()
	}
	left, _, _, _ := d.pdf.GetMargins()
	d.pdf.ImageOptions(path, left, d.pdf.GetY(), w, h, false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}, 0, "")
	d.pdf.SetY(d.pdf.GetY() + h)
	d.pdf.Ln(after)
}

func (d *document) contributors(contributors []*domain.ContributorStats, barChart string) {
	d.heading("Contributor Statistics")
	if barChart != "" {
		d.image("Issues per Contributor", barChart, 0.2)
	}
	for _, c := range contributors {
		d.pdf.Ln(0.2)
		d.pdf.SetFont("Helvetica", "B", 12)
		d.textColor(colorBlack)
		d.pdf.CellFormat(0, points(12), d.tr(c.Login), "", 1, "L", false, 0, "")
		d.pdf.Ln(0.1)

		rows := [][]string{
			{"Total Issues", strconv.Itoa(c.Total)},
			{"Open", strconv.Itoa(c.Open)},
			{"Closed", strconv.Itoa(c.Closed)},
			{"Bugs", strconv.Itoa(c.Bugs)},
			{"Enhancements", strconv.Itoa(c.Enhancements)},
			{"Other", strconv.Itoa(c.Other)},
		}
		d.table([]string{"Metric", "Count"}, rows, []float64{2.5, 1.5}, contributorTableStyle)
	}
}

func (d *document) issues(issues []domain.Issue) {
	d.heading("All Issues")
	d.pdf.Ln(0.2)
	if len(issues) == 0 {
		d.textColor(colorBlack)
		d.pdf.SetFont("Helvetica", "", 10)
		d.pdf.CellFormat(0, points(10), noIssuesText, "", 1, "L", false, 0, "")
		return
	}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, IssueRow(issue))
	}
	d.table([]string{"#", "Title", "State", "Assignee", "Labels"}, rows, []float64{0.5, 2.5, 0.8, 1.2, 1.5}, issuesTableStyle)
}

// table draws a grid table and repeats the header row on every new page.
// Cell text wraps within its column and a row grows to its tallest cell.
func (d *document) table(header []string, rows [][]string, widths []float64, style tableStyle) {
	d.pdf.SetLineWidth(style.gridWidth)
	d.pdf.SetDrawColor(style.grid.r, style.grid.g, style.grid.b)

	headerH := points(style.headerFontSize) + 0.1
	lineH := points(style.bodyFontSize)
	const rowPad = 0.06
	drawHeader := func() {
		d.pdf.SetFont("Helvetica", "B", style.headerFontSize)
		d.fillColor(style.header)
		d.textColor(colorWhiteSmoke)
		for i, text := range header {
			d.pdf.CellFormat(widths[i], headerH, text, "1", 0, "L", true, 0, "")
		}
		d.pdf.Ln(-1)
	}

	_, pageH := d.pdf.GetPageSize()
	left, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+headerH+lineH+rowPad > pageH-bottom {
		d.pdf.AddPage()
	}
	drawHeader()

	for n, row := range rows {
		d.pdf.SetFont("Helvetica", "", style.bodyFontSize)
		cells := make([][]string, len(row))
		lines := 1
		for i, text := range row {
			cells[i] = d.wrap(d.tr(text), widths[i])
			lines = max(lines, len(cells[i]))
		}
		rowH := float64(lines)*lineH + rowPad

		if d.pdf.GetY()+rowH > pageH-bottom {
			d.pdf.AddPage()
			drawHeader()
			d.pdf.SetFont("Helvetica", "", style.bodyFontSize)
		}
		d.fillColor(style.rowFills[n%len(style.rowFills)])
		d.textColor(colorBlack)

		x, y := left, d.pdf.GetY()
		for i, cell := range cells {
			d.pdf.Rect(x, y, widths[i], rowH, "FD")
			for k, line := range cell {
				d.pdf.SetXY(x, y+rowPad/2+float64(k)*lineH)
				d.pdf.CellFormat(widths[i], lineH, line, "", 0, "L", false, 0, "")
			}
			x += widths[i]
		}
		d.pdf.SetXY(left, y+rowH)
	}
}

// wrap breaks already translated text into lines that fit a cell of width w.
func (d *document) wrap(text string, w float64) []string {
	var lines []string
	for _, line := range d.pdf.SplitLines([]byte(text), w) {
		lines = append(lines, string(line))
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// IssueRow returns the cells of one row of the issue listing.
func IssueRow(issue domain.Issue) []string {
	return []string{
		strconv.Itoa(issue.Number),
		TruncateTitle(issue.Title),
		Capitalize(string(issue.State)),
		issue.Contributor(),
		FormatLabels(issue.Labels),
	}
}

// TruncateTitle keeps titles up to 50 characters and cuts longer ones to 47 plus "...".
func TruncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return string(runes[:maxTitleLen-len(ellipsis)]) + ellipsis
}

// FormatLabels joins up to three labels, marking omitted ones with "...".
func FormatLabels(labels []string) string {
	if len(labels) == 0 {
		return noLabels
	}
	shown := labels
	if len(shown) > maxLabels {
		shown = shown[:maxLabels]
	}
	text := strings.Join(shown, ", ")
	if text == "" {
		return noLabels
	}
	if len(labels) > maxLabels {
		text += ellipsis
	}
	return text
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// ABOUTME: Weekly sustainability report rendered as a PDF.
// ABOUTME: Title band, AI summary, stats table, per-day bar charts, recent entries and tips.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Point is one bar in a per-day chart.
type Point struct {
	Label string
	Value int
}

// Row is one line of a two-column table.
type Row struct {
	Left  string
	Right string
}

// Data is everything a weekly report shows.
type Data struct {
	Username    string
	GeneratedAt time.Time
	From        time.Time
	To          time.Time

	Summary  string
	Insights string
	Tips     string

	Stats      []Row
	WasteByDay []Point
	MealsByDay []Point
	Waste      []Row
	Meals      []Row

	Streak      int
	Achievement string
}

var (
	green     = [3]int{46, 125, 50}
	lightGray = [3]int{238, 238, 238}
	barWaste  = [3]int{229, 115, 115}
	barMeals  = [3]int{102, 187, 106}
)

const (
	pageWidth   = 210.0
	margin      = 15.0
	contentW    = pageWidth - 2*margin
	chartHeight = 40.0
)

// Render writes the report PDF to w.
func Render(w io.Writer, d *Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle("EcoEats Weekly Sustainability Report", true)
	pdf.SetAuthor("EcoEats", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	r := &renderer{pdf: pdf, tr: tr}

	r.titleBand(d)
	r.section("Progress Summary")
	r.paragraph(d.Summary)

	if len(d.Stats) > 0 {
		r.section("This Week")
		r.table("Metric", "Value", d.Stats)
	}

	r.section("Food Waste by Day (g/ml)")
	r.barChart(d.WasteByDay, barWaste)

	r.section("Meals Logged by Day")
	r.barChart(d.MealsByDay, barMeals)

	if len(d.Waste) > 0 {
		r.section("Recent Food Waste")
		r.table("Date", "Item", d.Waste)
	}
	if len(d.Meals) > 0 {
		r.section("Recent Meals")
		r.table("Date", "Meal", d.Meals)
	}

	r.section("Streak")
	r.paragraph(fmt.Sprintf("Current streak: %d days. Achievement: %s", d.Streak, d.Achievement))

	if d.Insights != "" {
		r.section("Weekly Insights")
		r.paragraph(d.Insights)
	}
	if d.Tips != "" {
		r.section("Sustainability Tips")
		r.paragraph(d.Tips)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Bytes renders the report into memory.
func Bytes(d *Data) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the download name for a report generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("EcoEats_Report_%s.pdf", t.Format("20060102"))
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (r *renderer) fill(c [3]int) {
	r.pdf.SetFillColor(c[0], c[1], c[2])
}

func (r *renderer) titleBand(d *Data) {
	r.fill(green)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Helvetica", "B", 18)
	r.pdf.CellFormat(contentW, 14, r.tr("EcoEats Weekly Sustainability Report"), "", 1, "C", true, 0, "")

	r.pdf.SetFont("Helvetica", "", 10)
	sub := fmt.Sprintf("%s  |  %s to %s  |  generated %s",
		d.Username,
		d.From.Format("Jan 2"),
		d.To.Format("Jan 2, 2006"),
		d.GeneratedAt.Format("2006-01-02 15:04"))
	r.pdf.CellFormat(contentW, 8, r.tr(sub), "", 1, "C", true, 0, "")
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Ln(4)
}

func (r *renderer) section(title string) {
	r.pdf.Ln(2)
	r.pdf.SetFont("Helvetica", "B", 13)
	r.pdf.SetTextColor(green[0], green[1], green[2])
	r.pdf.CellFormat(contentW, 8, r.tr(title), "B", 1, "L", false, 0, "")
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Ln(2)
}

func (r *renderer) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "-"
	}
	r.pdf.SetFont("Helvetica", "", 10)
	r.pdf.MultiCell(contentW, 5, r.tr(text), "", "L", false)
}

func (r *renderer) table(left, right string, rows []Row) {
	leftW := contentW * 0.3
	rightW := contentW - leftW

	r.fill(green)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Helvetica", "B", 10)
	r.pdf.CellFormat(leftW, 7, r.tr(left), "1", 0, "C", true, 0, "")
	r.pdf.CellFormat(rightW, 7, r.tr(right), "1", 1, "C", true, 0, "")

	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.SetFont("Helvetica", "", 9)
	r.fill(lightGray)
	for i, row := range rows {
		shade := i%2 == 1
		r.pdf.CellFormat(leftW, 6, r.tr(truncate(row.Left, 40)), "1", 0, "L", shade, 0, "")
		r.pdf.CellFormat(rightW, 6, r.tr(truncate(row.Right, 90)), "1", 1, "L", shade, 0, "")
	}
}

func (r *renderer) barChart(points []Point, color [3]int) {
	r.pdf.SetFont("Helvetica", "", 8)
	if len(points) == 0 {
		r.paragraph("No entries this week.")
		return
	}

	if r.pdf.GetY()+chartHeight+12 > 297-margin {
		r.pdf.AddPage()
	}

	peak := 0
	for _, p := range points {
		if p.Value > peak {
			peak = p.Value
		}
	}

	top := r.pdf.GetY()
	baseline := top + chartHeight
	slot := contentW / float64(len(points))
	barW := slot * 0.6

	r.pdf.SetDrawColor(120, 120, 120)
	r.pdf.Line(margin, baseline, margin+contentW, baseline)

	r.fill(color)
	for i, p := range points {
		x := margin + float64(i)*slot + (slot-barW)/2
		h := 0.0
		if peak > 0 {
			h = chartHeight * float64(p.Value) / float64(peak)
		}
		if h > 0 {
			r.pdf.Rect(x, baseline-h, barW, h, "F")
		}
		r.pdf.SetXY(x-2, baseline-h-4)
		r.pdf.CellFormat(barW+4, 4, fmt.Sprintf("%d", p.Value), "", 0, "C", false, 0, "")
		r.pdf.SetXY(margin+float64(i)*slot, baseline+1)
		r.pdf.CellFormat(slot, 4, r.tr(p.Label), "", 0, "C", false, 0, "")
	}
	r.pdf.SetXY(margin, baseline+7)
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

package pdf

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"taskman/internal/models"
)

// Generator renders task reports (interface so handlers can be tested with
// a stub).
type Generator interface {
	TaskReport(w io.Writer, tasks []models.Task) error
}

type ReportGenerator struct {
	fontName string
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{fontName: "Helvetica"}
}

// TaskReport writes a one-page-per-40-rows PDF listing of the given tasks.
func (g *ReportGenerator) TaskReport(w io.Writer, tasks []models.Task) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Task report", false)
	doc.SetAuthor("Task Manager", false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont(g.fontName, "B", 18)
	doc.CellFormat(0, 10, "Task report", "", 1, "C", false, 0, "")

	doc.SetFont(g.fontName, "", 11)
	sub := fmt.Sprintf("%d task(s)  —  %s", len(tasks), time.Now().Format("2006-01-02 15:04"))
	doc.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(doc)
	doc.Ln(3)

	for _, t := range tasks {
		doc.SetFont(g.fontName, "B", 12)
		doc.CellFormat(0, 7, fmt.Sprintf("#%d  %s", t.ID, t.Title), "", 1, "L", false, 0, "")

		doc.SetFont(g.fontName, "", 10)
		g.kvLine(doc, "Status", t.StatusSlug)
		if t.AssigneeID != nil {
			g.kvLine(doc, "Assignee", strconv.FormatInt(*t.AssigneeID, 10))
		}
		if len(t.LabelIDs) > 0 {
			parts := make([]string, len(t.LabelIDs))
			for i, id := range t.LabelIDs {
				parts[i] = strconv.FormatInt(id, 10)
			}
			g.kvLine(doc, "Labels", strings.Join(parts, ", "))
		}
		if t.Content != "" {
			doc.MultiCell(0, 5, t.Content, "", "L", false)
		}
		doc.Ln(2)
		g.hr(doc)
		doc.Ln(2)
	}

	return doc.Output(w)
}

func (g *ReportGenerator) hr(doc *gofpdf.Fpdf) {
	x, y := doc.GetXY()
	pageW, _ := doc.GetPageSize()
	doc.SetDrawColor(180, 180, 180)
	doc.Line(20, y, pageW-20, y)
	doc.SetXY(x, y+1)
}

func (g *ReportGenerator) kvLine(doc *gofpdf.Fpdf, key, value string) {
	doc.SetFont(g.fontName, "B", 10)
	doc.CellFormat(30, 5, key+":", "", 0, "L", false, 0, "")
	doc.SetFont(g.fontName, "", 10)
	doc.CellFormat(0, 5, value, "", 1, "L", false, 0, "")
}

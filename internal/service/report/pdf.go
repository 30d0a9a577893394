package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin  = 15.0
	lineHeight  = 6.0
	nameColumn  = 55.0
	issueColumn = 125.0
)

func renderPDF(w io.Writer, r rule.ComplianceAuditReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "HR Compliance Audit Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", r.Timestamp.UTC().Format(time.RFC3339)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Employees audited: %d", r.EmployeesAudited))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Employees with violations: %d", len(r.Violations)))
	pdf.Ln(11)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range []struct {
		label string
		count int
	}{
		{"Attendance violations", r.Summary.AttendanceViolations},
		{"Performance reviews overdue", r.Summary.PerformanceReviewsOverdue},
		{"Training non-compliant", r.Summary.TrainingNonCompliant},
		{"Retirement eligible", r.Summary.RetirementEligible},
	} {
		pdf.CellFormat(90, lineHeight+1, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, lineHeight+1, fmt.Sprintf("%d", row.count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Violations")
	pdf.Ln(9)

	if len(r.Violations) == 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 7, "No violations found.")
		pdf.Ln(7)
		return pdf.Output(w)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(nameColumn, lineHeight+1, "Employee", "1", 0, "L", true, 0, "")
	pdf.CellFormat(issueColumn, lineHeight+1, "Issues", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, v := range r.Violations {
		name := tr(v.EmployeeName + "\n" + v.EmployeeID)
		issues := tr(strings.Join(v.Violations, "\n"))
		rows := max(
			len(pdf.SplitLines([]byte(name), nameColumn-2)),
			len(pdf.SplitLines([]byte(issues), issueColumn-2)),
			1,
		)
		height := float64(rows) * lineHeight

		_, pageHeight := pdf.GetPageSize()
		if pdf.GetY()+height > pageHeight-pageMargin {
			pdf.AddPage()
		}

		x, y := pdf.GetXY()
		pdf.Rect(x, y, nameColumn, height, "D")
		pdf.Rect(x+nameColumn, y, issueColumn, height, "D")
		pdf.MultiCell(nameColumn, lineHeight, name, "", "L", false)
		pdf.SetXY(x+nameColumn, y)
		pdf.MultiCell(issueColumn, lineHeight, issues, "", "L", false)
		pdf.SetXY(x, y+height)
	}

	return pdf.Output(w)
}

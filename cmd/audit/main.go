// Command audit runs one compliance audit against the configured database,
// prints a summary and exports the report.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cmlabs-hris/hris-policy-engine/internal/app"
	"github.com/cmlabs-hris/hris-policy-engine/internal/config"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
)

func main() {
	var (
		withPDF  = flag.Bool("pdf", false, "also export the report as PDF")
		filename = flag.String("o", "", "base file name for the exported report (default hr_audit_<timestamp>)")
		verbose  = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*withPDF, *filename); err != nil {
		slog.Error("Audit failed", "error", err)
		os.Exit(1)
	}
}

func run(withPDF bool, filename string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	report, err := application.RuleService.RunComplianceAudit(ctx)
	if err != nil {
		return err
	}
	printSummary(os.Stdout, report)

	jsonPath, err := application.Exporter.ExportJSON(ctx, report, filename)
	if err != nil {
		return err
	}
	fmt.Printf("\nReport exported to %s\n", jsonPath)

	if withPDF {
		pdfPath, err := application.Exporter.ExportPDF(ctx, report, filename)
		if err != nil {
			return err
		}
		fmt.Printf("PDF report exported to %s\n", pdfPath)
	}

	return nil
}

func printSummary(w io.Writer, report rule.ComplianceAuditReport) {
	fmt.Fprintln(w, "HR compliance audit")
	fmt.Fprintf(w, "  Employees audited:           %d\n", report.EmployeesAudited)
	fmt.Fprintf(w, "  Employees with violations:   %d\n", len(report.Violations))
	fmt.Fprintf(w, "  Attendance violations:       %d\n", report.Summary.AttendanceViolations)
	fmt.Fprintf(w, "  Performance reviews overdue: %d\n", report.Summary.PerformanceReviewsOverdue)
	fmt.Fprintf(w, "  Training non-compliant:      %d\n", report.Summary.TrainingNonCompliant)
	fmt.Fprintf(w, "  Retirement eligible:         %d\n", report.Summary.RetirementEligible)

	for _, v := range report.Violations {
		fmt.Fprintf(w, "\n  %s (%s)\n", v.EmployeeName, v.EmployeeID)
		for _, msg := range v.Violations {
			fmt.Fprintf(w, "    - %s\n", msg)
		}
	}
}

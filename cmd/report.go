package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lindqvst/hourglass/internal/model"
	"github.com/lindqvst/hourglass/internal/report"
)

var (
	reportFormat string

	reportProjectName string
	reportWeekNumber  int
	reportWeekYear    int
	reportMonthNumber int
	reportMonthYear   int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a report file for a project, week or month",
}

var reportProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Generate a project report",
	Args:  cobra.NoArgs,
	RunE:  runReportProject,
}

var reportWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Generate a week report",
	Args:  cobra.NoArgs,
	RunE:  runReportWeek,
}

var reportMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Generate a month report",
	Args:  cobra.NoArgs,
	RunE:  runReportMonth,
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportFormat, "format", "json", "Report format: json, csv, yaml or html")

	reportProjectCmd.Flags().StringVar(&reportProjectName, "name", "", "Project name (required)")
	_ = reportProjectCmd.MarkFlagRequired("name")

	reportWeekCmd.Flags().IntVar(&reportWeekNumber, "number", 0, "Week number (required)")
	reportWeekCmd.Flags().IntVar(&reportWeekYear, "year", 0, "Week year (required)")
	_ = reportWeekCmd.MarkFlagRequired("number")
	_ = reportWeekCmd.MarkFlagRequired("year")

	reportMonthCmd.Flags().IntVar(&reportMonthNumber, "number", 0, "Month number (required)")
	reportMonthCmd.Flags().IntVar(&reportMonthYear, "year", 0, "Month year (required)")
	_ = reportMonthCmd.MarkFlagRequired("number")
	_ = reportMonthCmd.MarkFlagRequired("year")

	reportCmd.AddCommand(reportProjectCmd)
	reportCmd.AddCommand(reportWeekCmd)
	reportCmd.AddCommand(reportMonthCmd)
}

func runReportProject(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
	}

	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	p, err := t.ProjectByName(reportProjectName)
	if err != nil {
		return err
	}
	if err := t.Store().EnsureReportDir(); err != nil {
		return err
	}

	path, err := report.NewWriter(cfg.FilePaths.ReportDirectory).
		WriteProject(report.BuildProjectReport(p), format)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)
	return nil
}

func runReportWeek(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
	}

	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	w, err := t.WeekAt(reportWeekYear, reportWeekNumber)
	if err != nil {
		return err
	}
	if err := t.Store().EnsureReportDir(); err != nil {
		return err
	}

	path, err := report.NewWriter(cfg.FilePaths.ReportDirectory).
		WriteWeek(report.BuildWeekReport(w), format)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)
	return nil
}

func runReportMonth(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(reportFormat)
	if err != nil {
		return fmt.Errorf("%v: %w", err, model.ErrInvalidInput)
	}
	if reportMonthNumber < 1 || reportMonthNumber > 12 {
		return fmt.Errorf("invalid month number %d: %w", reportMonthNumber, model.ErrInvalidInput)
	}

	cfg, t, release, err := openTracker()
	if err != nil {
		return err
	}
	defer release()

	days := t.DaysInMonth(reportMonthYear, time.Month(reportMonthNumber))
	if len(days) == 0 {
		return fmt.Errorf("month %d-%02d: %w", reportMonthYear, reportMonthNumber, model.ErrNotFound)
	}
	if err := t.Store().EnsureReportDir(); err != nil {
		return err
	}

	path, err := report.NewWriter(cfg.FilePaths.ReportDirectory).
		WriteMonth(report.BuildMonthReport(reportMonthYear, reportMonthNumber, days), format)
	if err != nil {
		return err
	}
	fmt.Printf("Report written to %s\n", path)
	return nil
}

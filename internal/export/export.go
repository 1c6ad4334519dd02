// Package export writes receipt summaries to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/runnerr0/kickback/internal/pipeline"
	"github.com/runnerr0/kickback/internal/receipt"
	"github.com/runnerr0/kickback/internal/summary"
	"github.com/xuri/excelize/v2"
)

// OverviewSheet is the first sheet of every workbook.
const OverviewSheet = "Overview"

var overviewHeaders = []string{
	"Category", "Events", "Unit Value", "Estimated Value", "Most Active Hour", "Night Ratio", "Unique",
}

var itemHeaders = []string{"Rank", "Label", "Count"}

// Workbook builds the spreadsheet for report. The caller must close it.
func Workbook(report *pipeline.Report) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", OverviewSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeOverview(f, report); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing overview: %w", err)
	}
	for _, s := range report.Summaries {
		if err := writeCategory(f, s); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing %s sheet: %w", s.Category, err)
		}
	}
	return f, nil
}

// Write encodes the workbook for report as .xlsx to w.
func Write(w io.Writer, report *pipeline.Report) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("encoding workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook for report at path.
func WriteFile(path string, report *pipeline.Report) error {
	f, err := Workbook(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeOverview(f *excelize.File, report *pipeline.Report) error {
	row := 1
	pairs := [][2]any{
		{"Run ID", report.RunID},
		{"Generated", report.GeneratedAt.Format(time.RFC3339)},
	}
	if line := receipt.FilterLine(report.RecencyDays); line != "" {
		pairs = append(pairs, [2]any{"Filter", line})
	}
	if report.Label != nil {
		pairs = append(pairs, [2]any{"Data Label", report.Label.Label})
	}
	if report.Mood != nil {
		pairs = append(pairs, [2]any{"Data Mood", report.Mood.Label})
	}
	pairs = append(pairs,
		[2]any{"Total Value to Google", report.Total.Dollars()},
		[2]any{"You Received", summary.Money(0).Dollars()},
	)
	for _, p := range pairs {
		if err := setRow(f, OverviewSheet, row, p[0], p[1]); err != nil {
			return err
		}
		row++
	}

	row++
	headers := make([]any, len(overviewHeaders))
	for i, h := range overviewHeaders {
		headers[i] = h
	}
	if err := setRow(f, OverviewSheet, row, headers...); err != nil {
		return err
	}
	for _, s := range report.Summaries {
		row++
		hour := any("N/A")
		if s.ActiveHourKnown() {
			hour = s.MostActiveHour
		}
		err := setRow(f, OverviewSheet, row,
			s.Category.Title(),
			s.TotalCount,
			s.UnitValue,
			s.EstimatedValue.Dollars(),
			hour,
			s.NightRatio,
			s.UniqueCount,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeCategory(f *excelize.File, s summary.CategorySummary) error {
	sheet := s.Category.Title()
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := make([]any, len(itemHeaders))
	for i, h := range itemHeaders {
		headers[i] = h
	}
	if err := setRow(f, sheet, 1, headers...); err != nil {
		return err
	}
	for i, item := range s.TopItems {
		if err := setRow(f, sheet, i+2, i+1, item.Label, item.Count); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

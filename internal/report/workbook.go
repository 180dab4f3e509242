// Package report turns fetched report rows into .xlsx downloads and parses
// the date-range filter shared by the report pages.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Marga-Ghale/bpo-console/internal/models"
)

const (
	TrackerSheet = "Tracker"
	QASheet      = "QA Reviews"
)

var (
	trackerHeader = []interface{}{"Date", "User", "Project", "Task", "Count", "Billable Hours"}
	qaHeader      = []interface{}{"Date", "Agent", "Project", "Task", "QA", "Status", "Score"}
)

// TrackerWorkbook renders the billable-hours report: a bold header, one row
// per entry and a totals row.
func TrackerWorkbook(rows []models.TrackerRow) ([]byte, error) {
	w, err := newWorkbook(TrackerSheet, trackerHeader)
	if err != nil {
		return nil, err
	}
	defer w.close()

	count := 0
	hours := decimal.Zero
	for i, r := range rows {
		hrs, _ := r.BillableHours.Round(2).Float64()
		if err := w.row(i+2, []interface{}{r.Date, r.UserName, r.ProjectName, r.TaskName, r.Count, hrs}); err != nil {
			return nil, err
		}
		count += r.Count
		hours = hours.Add(r.BillableHours)
	}

	total, _ := hours.Round(2).Float64()
	totalRow := len(rows) + 2
	if err := w.row(totalRow, []interface{}{"Total", "", "", "", count, total}); err != nil {
		return nil, err
	}
	if err := w.bold(totalRow, len(trackerHeader)); err != nil {
		return nil, err
	}
	return w.bytes()
}

// QAWorkbook renders the QA review queue.
func QAWorkbook(rows []models.QAReview) ([]byte, error) {
	w, err := newWorkbook(QASheet, qaHeader)
	if err != nil {
		return nil, err
	}
	defer w.close()

	for i, r := range rows {
		score, _ := r.Score.Round(2).Float64()
		if err := w.row(i+2, []interface{}{r.Date, r.AgentName, r.ProjectName, r.TaskName, r.QAName, r.Status, score}); err != nil {
			return nil, err
		}
	}
	return w.bytes()
}

// ============================================
// excelize plumbing
// ============================================

type workbook struct {
	f         *excelize.File
	sheet     string
	boldStyle int
}

func newWorkbook(sheet string, header []interface{}) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	w := &workbook{f: f, sheet: sheet, boldStyle: style}
	if err := w.row(1, header); err != nil {
		f.Close()
		return nil, err
	}
	if err := w.bold(1, len(header)); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}
	return w, nil
}

func (w *workbook) row(n int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(w.sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", n, err)
	}
	return nil
}

func (w *workbook) bold(row, cols int) error {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, first, last, w.boldStyle)
}

func (w *workbook) bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *workbook) close() {
	_ = w.f.Close()
}

package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Marga-Ghale/bpo-console/internal/models"
)

func openSheet(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	return rows
}

func TestTrackerWorkbook(t *testing.T) {
	rows := []models.TrackerRow{
		{Date: "2026-10-01", UserName: "Asha", ProjectName: "Apollo", TaskName: "Calls", Count: 35, BillableHours: decimal.RequireFromString("7.25")},
		{Date: "2026-10-02", UserName: "Ravi", ProjectName: "Apollo", TaskName: "Chats", Count: 20, BillableHours: decimal.RequireFromString("0.1")},
		{Date: "2026-10-02", UserName: "Ravi", ProjectName: "Apollo", TaskName: "Chats", Count: 1, BillableHours: decimal.RequireFromString("0.2")},
	}
	data, err := TrackerWorkbook(rows)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}

	got := openSheet(t, data, TrackerSheet)
	if len(got) != len(rows)+2 {
		t.Fatalf("expected header, %d rows and totals, got %d rows", len(rows), len(got))
	}
	if got[0][0] != "Date" || got[0][5] != "Billable Hours" {
		t.Fatalf("header: %v", got[0])
	}
	if got[1][1] != "Asha" || got[1][4] != "35" {
		t.Fatalf("first row: %v", got[1])
	}
	total := got[len(got)-1]
	if total[0] != "Total" || total[4] != "56" || total[5] != "7.55" {
		t.Fatalf("totals row: %v", total)
	}
}

func TestTrackerWorkbook_HeaderIsBold(t *testing.T) {
	data, err := TrackerWorkbook(nil)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	id, err := f.GetCellStyle(TrackerSheet, "A1")
	if err != nil {
		t.Fatalf("style: %v", err)
	}
	style, err := f.GetStyle(id)
	if err != nil || style.Font == nil || !style.Font.Bold {
		t.Fatalf("header cell is not bold: %+v %v", style, err)
	}
}

func TestQAWorkbook(t *testing.T) {
	data, err := QAWorkbook([]models.QAReview{
		{ID: "1", Date: "2026-10-01", AgentName: "Asha", QAName: "Ravi", Status: "passed", Score: decimal.NewFromInt(92)},
	})
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	got := openSheet(t, data, QASheet)
	if len(got) != 2 || got[1][5] != "passed" || got[1][6] != "92" {
		t.Fatalf("unexpected rows: %v", got)
	}
}

func TestParseDateRange(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 4, 0, 0, time.UTC)

	r, err := ParseDateRange("", "", now)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if r.FromString() != "2026-10-12" || r.ToString() != "2026-10-18" {
		t.Fatalf("default range: %s..%s", r.FromString(), r.ToString())
	}

	r, err = ParseDateRange("2026-10-01", "2026-10-01", now)
	if err != nil || r.Filename("tracker") != "tracker_2026-10-01_2026-10-01.xlsx" {
		t.Fatalf("single day: %v %v", r, err)
	}

	for _, c := range [][2]string{{"2026-10-05", "2026-10-01"}, {"10/01/2026", ""}, {"", "yesterday"}} {
		if _, err := ParseDateRange(c[0], c[1], now); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("%v: expected ErrInvalidRange, got %v", c, err)
		}
	}
}

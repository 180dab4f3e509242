package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/adapter"
	"github.com/Marga-Ghale/bpo-console/internal/backend"
	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/notification"
	"github.com/Marga-Ghale/bpo-console/internal/report"
)

// ============================================
// Report Service
// ============================================

type TrackerReport struct {
	From         string               `json:"from"`
	To           string               `json:"to"`
	Rows         []models.TrackerRow  `json:"rows"`
	Notification *models.Notification `json:"notification,omitempty"`
}

type QAReport struct {
	From         string               `json:"from"`
	To           string               `json:"to"`
	Rows         []models.QAReview    `json:"rows"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// Export is a generated spreadsheet ready to download.
type Export struct {
	Filename string
	Data     []byte
}

type ReportService interface {
	Tracker(ctx context.Context, userID, from, to string) (*TrackerReport, error)
	QA(ctx context.Context, userID, from, to string) (*QAReport, error)
	ExportTracker(ctx context.Context, userID, from, to string) (*Export, error)
	ExportQA(ctx context.Context, userID, from, to string) (*Export, error)
}

type reportService struct {
	backend *backend.Client
	notify  *notification.Service
	now     func() time.Time
}

func NewReportService(client *backend.Client, notify *notification.Service) ReportService {
	return &reportService{backend: client, notify: notify, now: time.Now}
}

func (s *reportService) dateRange(from, to string) (report.DateRange, error) {
	r, err := report.ParseDateRange(from, to, s.now())
	if errors.Is(err, report.ErrInvalidRange) {
		return r, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return r, err
}

func (s *reportService) Tracker(ctx context.Context, userID, from, to string) (*TrackerReport, error) {
	r, err := s.dateRange(from, to)
	if err != nil {
		return nil, err
	}
	out := &TrackerReport{From: r.FromString(), To: r.ToString(), Rows: []models.TrackerRow{}}

	records, err := s.backend.TrackerReport(ctx, &backend.ReportRequest{StartDate: out.From, EndDate: out.To})
	if err != nil {
		log.Printf("❌ [Reports] tracker user=%s: %v", userID, err)
		out.Notification = s.notify.Error(userID, backend.MessageOf(err, "Failed to load tracker report"))
		return out, nil
	}
	out.Rows = adapter.TrackerRowsFromRecords(records)
	return out, nil
}

func (s *reportService) QA(ctx context.Context, userID, from, to string) (*QAReport, error) {
	r, err := s.dateRange(from, to)
	if err != nil {
		return nil, err
	}
	out := &QAReport{From: r.FromString(), To: r.ToString(), Rows: []models.QAReview{}}

	records, err := s.backend.QAReviews(ctx, &backend.ReportRequest{StartDate: out.From, EndDate: out.To})
	if err != nil {
		log.Printf("❌ [Reports] qa user=%s: %v", userID, err)
		out.Notification = s.notify.Error(userID, backend.MessageOf(err, "Failed to load QA reviews"))
		return out, nil
	}
	out.Rows = adapter.QAReviewsFromRecords(records)
	return out, nil
}

// ExportTracker fails rather than exporting an empty sheet when the fetch
// fails.
func (s *reportService) ExportTracker(ctx context.Context, userID, from, to string) (*Export, error) {
	r, err := s.dateRange(from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.backend.TrackerReport(ctx, &backend.ReportRequest{StartDate: r.FromString(), EndDate: r.ToString()})
	if err != nil {
		return nil, fmt.Errorf("failed to load tracker report: %w", err)
	}
	data, err := report.TrackerWorkbook(adapter.TrackerRowsFromRecords(records))
	if err != nil {
		return nil, err
	}
	return &Export{Filename: r.Filename("tracker"), Data: data}, nil
}

func (s *reportService) ExportQA(ctx context.Context, userID, from, to string) (*Export, error) {
	r, err := s.dateRange(from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.backend.QAReviews(ctx, &backend.ReportRequest{StartDate: r.FromString(), EndDate: r.ToString()})
	if err != nil {
		return nil, fmt.Errorf("failed to load QA reviews: %w", err)
	}
	data, err := report.QAWorkbook(adapter.QAReviewsFromRecords(records))
	if err != nil {
		return nil, err
	}
	return &Export{Filename: r.Filename("qa_reviews"), Data: data}, nil
}

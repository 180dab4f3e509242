package adapter

import (
	"github.com/Marga-Ghale/bpo-console/internal/models"
)

func TrackerRowFromRecord(rec map[string]interface{}) models.TrackerRow {
	count := number(rec, "production", "count", "task_count")
	return models.TrackerRow{
		Date:          dateOnly(str(rec, "date", "tracker_date", "created_at")),
		UserName:      str(rec, "user_name", "agent_name", "name"),
		ProjectName:   str(rec, "project_name"),
		TaskName:      str(rec, "task_name"),
		Count:         int(count.IntPart()),
		BillableHours: number(rec, "billable_hours", "billable_hour", "total_hours", "hours"),
	}
}

func TrackerRowsFromRecords(recs []map[string]interface{}) []models.TrackerRow {
	out := make([]models.TrackerRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, TrackerRowFromRecord(rec))
	}
	return out
}

func QAReviewFromRecord(rec map[string]interface{}) models.QAReview {
	return models.QAReview{
		ID:          str(rec, "qa_id", "review_id", "id"),
		Date:        dateOnly(str(rec, "date", "review_date", "created_at")),
		AgentName:   str(rec, "agent_name", "user_name"),
		ProjectName: str(rec, "project_name"),
		TaskName:    str(rec, "task_name"),
		QAName:      str(rec, "qa_name", "reviewer_name", "reviewer"),
		Status:      str(rec, "status", "qa_status"),
		Score:       number(rec, "score", "qa_score"),
	}
}

func QAReviewsFromRecords(recs []map[string]interface{}) []models.QAReview {
	out := make([]models.QAReview, 0, len(recs))
	for _, rec := range recs {
		out = append(out, QAReviewFromRecord(rec))
	}
	return out
}

// dateOnly trims an ISO timestamp to its YYYY-MM-DD prefix.
func dateOnly(s string) string {
	if len(s) >= 10 && s[4] == '-' && s[7] == '-' {
		return s[:10]
	}
	return s
}

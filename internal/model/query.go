package model

import "time"

// AnalyzeRequest is the body of POST /api/analyze/
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// QueryLog is one analyzed query as stored in query_logs
type QueryLog struct {
	ID             string     `db:"id"`
	Query          string     `db:"query"`
	Intent         IntentKind `db:"intent"`
	Area           string     `db:"area"`
	OtherArea      string     `db:"other_area"`
	RowCount       int        `db:"row_count"`
	SummaryFailed  bool       `db:"summary_failed"`
	ResponseTimeMs int64      `db:"response_time_ms"`
	CreatedAt      time.Time  `db:"created_at"`
}

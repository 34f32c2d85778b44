package database

import (
	"context"
	"fmt"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/payroll_report_sample/internal/domain"
)

// RowTraceDoc mirrors domain.RowTrace for ES storage.
type RowTraceDoc struct {
	EmployeeID int       `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Salary     int64     `json:"salary"`
	Bonus      *int64    `json:"bonus"`
	RecordedAt time.Time `json:"recorded_at"`
}

// SummaryTraceDoc mirrors domain.SummaryTrace for ES storage.
type SummaryTraceDoc struct {
	DepartmentID int       `json:"department_id"`
	Total        int64     `json:"total"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// TraceIndexer wraps an olivere/elastic client and indexes payroll trace
// documents into a single index.
type TraceIndexer struct {
	client *elastic.Client
	index  string
}

// NewTraceIndexer creates a client for Elasticsearch 7.x.
func NewTraceIndexer(url, index string) (*TraceIndexer, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false), // Essential when using Docker or cloud
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &TraceIndexer{client: client, index: index}, nil
}

// IndexRowTrace indexes one per-row trace document.
func (ti *TraceIndexer) IndexRowTrace(ctx context.Context, row domain.RowTrace) error {
	doc := RowTraceDoc{
		EmployeeID: row.EmployeeID,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Salary:     row.Salary,
		Bonus:      row.Bonus,
		RecordedAt: time.Now().UTC(),
	}

	_, err := ti.client.Index().
		Index(ti.index).
		BodyJson(doc).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index row trace for employee %d: %w", row.EmployeeID, err)
	}
	return nil
}

// IndexSummaryTrace indexes one department summary document.
func (ti *TraceIndexer) IndexSummaryTrace(ctx context.Context, summary domain.SummaryTrace) error {
	doc := SummaryTraceDoc{
		DepartmentID: summary.DepartmentID,
		Total:        summary.Total,
		RecordedAt:   time.Now().UTC(),
	}

	_, err := ti.client.Index().
		Index(ti.index).
		BodyJson(doc).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index summary trace for department %d: %w", summary.DepartmentID, err)
	}
	return nil
}

// Package trace provides TraceSink implementations. Sinks are
// best-effort collaborators: callers treat their errors as advisory.
package trace

import (
	"context"

	"github.com/locvowork/payroll_report_sample/internal/domain"
	"github.com/locvowork/payroll_report_sample/internal/logger"
)

// LogSink writes traces through the zerolog logger in the same shape the
// legacy report printed them.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) RecordRow(ctx context.Context, row domain.RowTrace) error {
	var bonus int64
	if row.Bonus != nil {
		bonus = *row.Bonus
	}
	logger.InfoLog(ctx, "Emp ID: %d, Name: %s %s, Salary: %d, Bonus: %d",
		row.EmployeeID, row.FirstName, row.LastName, row.Salary, bonus)
	return nil
}

func (s *LogSink) RecordSummary(ctx context.Context, summary domain.SummaryTrace) error {
	logger.InfoLog(ctx, "Total Salary for Department %d: %d", summary.DepartmentID, summary.Total)
	return nil
}

// Indexer is the subset of the Elasticsearch trace client the sink needs.
type Indexer interface {
	IndexRowTrace(ctx context.Context, row domain.RowTrace) error
	IndexSummaryTrace(ctx context.Context, summary domain.SummaryTrace) error
}

// ElasticSink adapts a trace indexer to the TraceSink interface.
type ElasticSink struct {
	indexer Indexer
}

func NewElasticSink(indexer Indexer) *ElasticSink {
	return &ElasticSink{indexer: indexer}
}

func (s *ElasticSink) RecordRow(ctx context.Context, row domain.RowTrace) error {
	return s.indexer.IndexRowTrace(ctx, row)
}

func (s *ElasticSink) RecordSummary(ctx context.Context, summary domain.SummaryTrace) error {
	return s.indexer.IndexSummaryTrace(ctx, summary)
}

// MultiSink fans out each trace to several sinks. Every sink is attempted;
// a failing sink is logged and does not stop the others.
type MultiSink struct {
	sinks []domain.TraceSink
}

func NewMultiSink(sinks ...domain.TraceSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (s *MultiSink) RecordRow(ctx context.Context, row domain.RowTrace) error {
	for _, sink := range s.sinks {
		if err := sink.RecordRow(ctx, row); err != nil {
			logger.WarnLog(ctx, "trace sink dropped row for employee %d: %v", row.EmployeeID, err)
		}
	}
	return nil
}

func (s *MultiSink) RecordSummary(ctx context.Context, summary domain.SummaryTrace) error {
	for _, sink := range s.sinks {
		if err := sink.RecordSummary(ctx, summary); err != nil {
			logger.WarnLog(ctx, "trace sink dropped summary for department %d: %v", summary.DepartmentID, err)
		}
	}
	return nil
}

// NopSink discards all traces.
type NopSink struct{}

func (NopSink) RecordRow(ctx context.Context, row domain.RowTrace) error { return nil }

func (NopSink) RecordSummary(ctx context.Context, summary domain.SummaryTrace) error { return nil }

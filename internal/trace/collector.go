package trace

import (
	"context"
	"sync"

	"github.com/locvowork/payroll_report_sample/internal/domain"
)

// Collector retains every trace it receives. It backs report export and
// tests; one Collector serves one aggregation scan.
type Collector struct {
	mu        sync.Mutex
	rows      []domain.RowTrace
	summaries []domain.SummaryTrace
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) RecordRow(ctx context.Context, row domain.RowTrace) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = append(c.rows, row)
	return nil
}

func (c *Collector) RecordSummary(ctx context.Context, summary domain.SummaryTrace) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries = append(c.summaries, summary)
	return nil
}

func (c *Collector) Rows() []domain.RowTrace {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.RowTrace, len(c.rows))
	copy(out, c.rows)
	return out
}

func (c *Collector) Summaries() []domain.SummaryTrace {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.SummaryTrace, len(c.summaries))
	copy(out, c.summaries)
	return out
}

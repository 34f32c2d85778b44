package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/payroll_report_sample/internal/domain"
)

type flakySink struct {
	err  error
	rows int
	sums int
}

func (s *flakySink) RecordRow(ctx context.Context, row domain.RowTrace) error {
	s.rows++
	return s.err
}

func (s *flakySink) RecordSummary(ctx context.Context, summary domain.SummaryTrace) error {
	s.sums++
	return s.err
}

func TestMultiSinkBestEffort(t *testing.T) {
	broken := &flakySink{err: errors.New("down")}
	healthy := &flakySink{}
	multi := NewMultiSink(broken, healthy)

	row := domain.RowTrace{EmployeeID: 201, FirstName: "John", LastName: "Doe", Salary: 50000}
	require.NoError(t, multi.RecordRow(context.Background(), row))
	require.NoError(t, multi.RecordSummary(context.Background(), domain.SummaryTrace{DepartmentID: 1, Total: 115500}))

	// The broken sink never stops the healthy one.
	assert.Equal(t, 1, broken.rows)
	assert.Equal(t, 1, healthy.rows)
	assert.Equal(t, 1, broken.sums)
	assert.Equal(t, 1, healthy.sums)
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	ctx := context.Background()

	require.NoError(t, c.RecordRow(ctx, domain.RowTrace{EmployeeID: 201, Salary: 50000}))
	require.NoError(t, c.RecordRow(ctx, domain.RowTrace{EmployeeID: 202, Salary: 55000}))
	require.NoError(t, c.RecordSummary(ctx, domain.SummaryTrace{DepartmentID: 1, Total: 105000}))

	rows := c.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 201, rows[0].EmployeeID)

	summaries := c.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, int64(105000), summaries[0].Total)

	// Returned slices are copies; mutating them leaves the collector alone.
	rows[0].EmployeeID = 999
	assert.Equal(t, 201, c.Rows()[0].EmployeeID)
}

func TestNopSink(t *testing.T) {
	var s NopSink
	assert.NoError(t, s.RecordRow(context.Background(), domain.RowTrace{}))
	assert.NoError(t, s.RecordSummary(context.Background(), domain.SummaryTrace{}))
}

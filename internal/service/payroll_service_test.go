package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/payroll_report_sample/internal/domain"
)

// fakeStream replays a fixed set of rows and can simulate a cursor that
// dies partway through the scan.
type fakeStream struct {
	rows     []domain.CompensationRow
	pos      int
	failAt   int   // 1-based row index whose fetch fails; 0 disables
	streamEr error // reported by Err() once the rows run out
	closed   bool
}

func (s *fakeStream) Next() bool {
	if s.failAt > 0 && s.pos+1 > s.failAt {
		return false
	}
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *fakeStream) Row() (*domain.CompensationRow, error) {
	row := s.rows[s.pos-1]
	return &row, nil
}

func (s *fakeStream) Err() error {
	if s.failAt > 0 && s.pos >= s.failAt {
		if s.streamEr != nil {
			return s.streamEr
		}
		return errors.New("connection reset")
	}
	return s.streamEr
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeRepo struct {
	stream  *fakeStream
	openErr error
}

func (r *fakeRepo) StreamDepartmentCompensation(ctx context.Context, departmentID int) (domain.CompensationStream, error) {
	if r.openErr != nil {
		return nil, r.openErr
	}
	return r.stream, nil
}

func (r *fakeRepo) GetDepartment(ctx context.Context, id int) (*domain.Department, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeRepo) ListDepartmentEmployees(ctx context.Context, departmentID int) ([]domain.Employee, error) {
	return nil, errors.New("not implemented")
}

// recordingSink captures traces and can simulate a broken sink or run a
// hook after each row.
type recordingSink struct {
	rows       []domain.RowTrace
	summaries  []domain.SummaryTrace
	rowErr     error
	summaryErr error
	onRow      func()
}

func (s *recordingSink) RecordRow(ctx context.Context, row domain.RowTrace) error {
	s.rows = append(s.rows, row)
	if s.onRow != nil {
		s.onRow()
	}
	return s.rowErr
}

func (s *recordingSink) RecordSummary(ctx context.Context, summary domain.SummaryTrace) error {
	s.summaries = append(s.summaries, summary)
	return s.summaryErr
}

func bonus(v int64) *int64 { return &v }

func deptOneRows() []domain.CompensationRow {
	return []domain.CompensationRow{
		{EmployeeID: 1, FirstName: "E", LastName: "One", Salary: 1000, Bonus: bonus(200)},
		{EmployeeID: 2, FirstName: "E", LastName: "Two", Salary: 1500, Bonus: nil},
	}
}

func TestComputeDepartmentTotal(t *testing.T) {
	t.Run("sums salary plus coalesced bonus", func(t *testing.T) {
		sink := &recordingSink{}
		svc := NewPayrollService(&fakeRepo{stream: &fakeStream{rows: deptOneRows()}}, sink, nil, nil)

		total, err := svc.ComputeDepartmentTotal(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2700), total)

		require.Len(t, sink.rows, 2)
		assert.Equal(t, 1, sink.rows[0].EmployeeID)
		assert.Nil(t, sink.rows[1].Bonus)
		require.Len(t, sink.summaries, 1)
		assert.Equal(t, domain.SummaryTrace{DepartmentID: 1, Total: 2700}, sink.summaries[0])
	})

	t.Run("empty department yields zero without error", func(t *testing.T) {
		sink := &recordingSink{}
		stream := &fakeStream{}
		svc := NewPayrollService(&fakeRepo{stream: stream}, sink, nil, nil)

		total, err := svc.ComputeDepartmentTotal(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, sink.rows)
		require.Len(t, sink.summaries, 1)
		assert.Equal(t, int64(0), sink.summaries[0].Total)
		assert.True(t, stream.closed)
	})

	t.Run("total is independent of row order", func(t *testing.T) {
		rows := []domain.CompensationRow{
			{EmployeeID: 1, Salary: 1000, Bonus: bonus(200)},
			{EmployeeID: 2, Salary: 1500},
			{EmployeeID: 3, Salary: 900, Bonus: bonus(50)},
			{EmployeeID: 4, Salary: 2100},
		}
		const want = int64(5750)

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 10; i++ {
			shuffled := make([]domain.CompensationRow, len(rows))
			copy(shuffled, rows)
			rng.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})

			svc := NewPayrollService(&fakeRepo{stream: &fakeStream{rows: shuffled}}, &recordingSink{}, nil, nil)
			total, err := svc.ComputeDepartmentTotal(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, want, total)
		}
	})

	t.Run("open failure maps to storage unavailable", func(t *testing.T) {
		sink := &recordingSink{}
		svc := NewPayrollService(&fakeRepo{openErr: errors.New("permission denied")}, sink, nil, nil)

		total, err := svc.ComputeDepartmentTotal(context.Background(), 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, sink.summaries)
	})

	t.Run("mid-stream failure keeps emitted traces but no total", func(t *testing.T) {
		sink := &recordingSink{}
		stream := &fakeStream{rows: deptOneRows(), failAt: 1}
		svc := NewPayrollService(&fakeRepo{stream: stream}, sink, nil, nil)

		total, err := svc.ComputeDepartmentTotal(context.Background(), 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
		assert.Equal(t, int64(0), total)

		// The row traced before the failure stays delivered.
		assert.Len(t, sink.rows, 1)
		assert.Empty(t, sink.summaries)
		assert.True(t, stream.closed)
	})

	t.Run("cancellation mid-scan returns cancelled and no summary", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sink := &recordingSink{onRow: cancel}
		svc := NewPayrollService(&fakeRepo{stream: &fakeStream{rows: deptOneRows()}}, sink, nil, nil)

		total, err := svc.ComputeDepartmentTotal(ctx, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCancelled)
		assert.Equal(t, int64(0), total)

		assert.Len(t, sink.rows, 1)
		assert.Empty(t, sink.summaries)
	})

	t.Run("cancellation before the scan starts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		repo := &fakeRepo{openErr: context.Canceled}
		svc := NewPayrollService(repo, &recordingSink{}, nil, nil)

		_, err := svc.ComputeDepartmentTotal(ctx, 1)
		assert.ErrorIs(t, err, domain.ErrCancelled)
	})

	t.Run("sink failures never fail the aggregation", func(t *testing.T) {
		sink := &recordingSink{rowErr: errors.New("sink down"), summaryErr: errors.New("sink down")}
		svc := NewPayrollService(&fakeRepo{stream: &fakeStream{rows: deptOneRows()}}, sink, nil, nil)

		total, err := svc.ComputeDepartmentTotal(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2700), total)
	})

	t.Run("archive failure never fails the aggregation", func(t *testing.T) {
		svc := NewPayrollService(
			&fakeRepo{stream: &fakeStream{rows: deptOneRows()}},
			&recordingSink{},
			failingArchive{},
			nil,
		)

		total, err := svc.ComputeDepartmentTotal(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2700), total)
	})
}

type failingArchive struct{}

func (failingArchive) SaveSummary(ctx context.Context, summary domain.SummaryTrace) error {
	return errors.New("archive down")
}

func (failingArchive) ListSummaries(ctx context.Context, departmentID int) ([]domain.ArchivedSummary, error) {
	return nil, errors.New("archive down")
}

type stubArchive struct {
	saved []domain.SummaryTrace
}

func (a *stubArchive) SaveSummary(ctx context.Context, summary domain.SummaryTrace) error {
	a.saved = append(a.saved, summary)
	return nil
}

func (a *stubArchive) ListSummaries(ctx context.Context, departmentID int) ([]domain.ArchivedSummary, error) {
	var out []domain.ArchivedSummary
	for _, s := range a.saved {
		if s.DepartmentID == departmentID {
			out = append(out, domain.ArchivedSummary{DepartmentID: s.DepartmentID, Total: s.Total})
		}
	}
	return out, nil
}

func TestPayrollHistory(t *testing.T) {
	t.Run("returns archived totals", func(t *testing.T) {
		archive := &stubArchive{}
		svc := NewPayrollService(&fakeRepo{stream: &fakeStream{rows: deptOneRows()}}, &recordingSink{}, archive, nil)

		_, err := svc.ComputeDepartmentTotal(context.Background(), 1)
		require.NoError(t, err)

		history, err := svc.PayrollHistory(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, int64(2700), history[0].Total)
	})

	t.Run("no archive means no history", func(t *testing.T) {
		svc := NewPayrollService(&fakeRepo{}, &recordingSink{}, nil, nil)

		history, err := svc.PayrollHistory(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestDepartmentReport(t *testing.T) {
	sink := &recordingSink{}
	svc := NewPayrollService(&fakeRepo{stream: &fakeStream{rows: deptOneRows()}}, sink, nil, nil)

	report, err := svc.DepartmentReport(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, report.DepartmentID)
	assert.Equal(t, int64(2700), report.Total)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, int64(1000), report.Rows[0].Salary)

	// The configured sink still sees everything.
	assert.Len(t, sink.rows, 2)
	assert.Len(t, sink.summaries, 1)
}

func TestOrZero(t *testing.T) {
	if got := orZero(nil); got != 0 {
		t.Errorf("expected 0 for nil bonus, got %d", got)
	}
	if got := orZero(bonus(5500)); got != 5500 {
		t.Errorf("expected 5500, got %d", got)
	}
}

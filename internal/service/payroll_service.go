package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/locvowork/payroll_report_sample/internal/domain"
	"github.com/locvowork/payroll_report_sample/internal/logger"
	"github.com/locvowork/payroll_report_sample/internal/metrics"
	"github.com/locvowork/payroll_report_sample/internal/trace"
)

// SummaryArchive persists finished department totals and serves them
// back for history views. The archive is an optional collaborator; a nil
// archive disables archiving.
type SummaryArchive interface {
	SaveSummary(ctx context.Context, summary domain.SummaryTrace) error
	ListSummaries(ctx context.Context, departmentID int) ([]domain.ArchivedSummary, error)
}

// PayrollService computes department compensation totals by streaming the
// employee/salary join and accumulating salary + coalesce(bonus, 0).
type PayrollService struct {
	repo    domain.PayrollRepository
	sink    domain.TraceSink
	archive SummaryArchive
	m       *metrics.Provider
}

// NewPayrollService creates a new PayrollService instance. archive and m
// may be nil.
func NewPayrollService(
	repo domain.PayrollRepository,
	sink domain.TraceSink,
	archive SummaryArchive,
	m *metrics.Provider,
) *PayrollService {
	return &PayrollService{
		repo:    repo,
		sink:    sink,
		archive: archive,
		m:       m,
	}
}

// ComputeDepartmentTotal returns the sum of salary plus bonus over every
// employee of the department that has a salary record. A department with
// no matching rows yields 0, not an error. The call fails with
// domain.ErrStorageUnavailable when the underlying read fails and with
// domain.ErrCancelled when the context is cancelled mid-scan; in both
// cases no total is returned and no summary trace is emitted. Row traces
// already delivered to the sink are never retracted.
func (ps *PayrollService) ComputeDepartmentTotal(ctx context.Context, departmentID int) (int64, error) {
	start := time.Now()

	total, err := ps.computeDepartmentTotal(ctx, departmentID)
	switch {
	case err == nil:
		ps.m.ObserveAggregation("ok", time.Since(start))
	case errors.Is(err, domain.ErrCancelled):
		ps.m.ObserveAggregation("cancelled", time.Since(start))
	default:
		ps.m.ObserveAggregation("storage_error", time.Since(start))
	}
	return total, err
}

func (ps *PayrollService) computeDepartmentTotal(ctx context.Context, departmentID int) (int64, error) {
	stream, err := ps.repo.StreamDepartmentCompensation(ctx, departmentID)
	if err != nil {
		if isContextErr(err) || ctx.Err() != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrCancelled, err)
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	defer stream.Close()

	var total int64
	for stream.Next() {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrCancelled, err)
		}

		row, err := stream.Row()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}

		total += row.Salary + orZero(row.Bonus)
		ps.m.ObserveRowScanned()

		rowTrace := domain.RowTrace{
			EmployeeID: row.EmployeeID,
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Salary:     row.Salary,
			Bonus:      row.Bonus,
		}
		if err := ps.sink.RecordRow(ctx, rowTrace); err != nil {
			logger.WarnLog(ctx, "trace sink rejected row for employee %d: %v", row.EmployeeID, err)
		}
	}

	if err := stream.Err(); err != nil {
		if isContextErr(err) {
			return 0, fmt.Errorf("%w: %v", domain.ErrCancelled, err)
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCancelled, err)
	}

	summary := domain.SummaryTrace{DepartmentID: departmentID, Total: total}
	if err := ps.sink.RecordSummary(ctx, summary); err != nil {
		logger.WarnLog(ctx, "trace sink rejected summary for department %d: %v", departmentID, err)
	}
	if ps.archive != nil {
		if err := ps.archive.SaveSummary(ctx, summary); err != nil {
			logger.WarnLog(ctx, "failed to archive summary for department %d: %v", departmentID, err)
		}
	}

	return total, nil
}

// DepartmentReport runs the same scan as ComputeDepartmentTotal while
// capturing the traced rows, so export surfaces can render them.
func (ps *PayrollService) DepartmentReport(ctx context.Context, departmentID int) (*domain.DepartmentReport, error) {
	collector := trace.NewCollector()
	scoped := NewPayrollService(ps.repo, trace.NewMultiSink(ps.sink, collector), ps.archive, ps.m)

	total, err := scoped.ComputeDepartmentTotal(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	return &domain.DepartmentReport{
		DepartmentID: departmentID,
		Rows:         collector.Rows(),
		Total:        total,
	}, nil
}

// PayrollHistory returns the archived totals of a department, newest
// first. Without an archive configured there is no history to return.
func (ps *PayrollService) PayrollHistory(ctx context.Context, departmentID int) ([]domain.ArchivedSummary, error) {
	if ps.archive == nil {
		return nil, nil
	}
	return ps.archive.ListSummaries(ctx, departmentID)
}

// GetDepartment retrieves one department record.
func (ps *PayrollService) GetDepartment(ctx context.Context, id int) (*domain.Department, error) {
	return ps.repo.GetDepartment(ctx, id)
}

// ListDepartments retrieves all department records.
func (ps *PayrollService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return ps.repo.ListDepartments(ctx)
}

// ListDepartmentEmployees retrieves the employees assigned to a department.
func (ps *PayrollService) ListDepartmentEmployees(ctx context.Context, departmentID int) ([]domain.Employee, error) {
	return ps.repo.ListDepartmentEmployees(ctx, departmentID)
}

// orZero is the bonus coalescing policy: a missing bonus counts as zero.
func orZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package domain

import "context"

// CompensationStream is a lazy, read-only cursor over joined
// (employee, salary) rows. It mirrors the sql.Rows iteration contract:
// call Next, then Row, and check Err after Next returns false.
type CompensationStream interface {
	Next() bool
	Row() (*CompensationRow, error)
	Err() error
	Close() error
}

// PayrollRepository defines read access to the payroll relations.
type PayrollRepository interface {
	// StreamDepartmentCompensation returns the inner join of employees and
	// salaries filtered to one department. Row order is whatever the
	// underlying cursor yields.
	StreamDepartmentCompensation(ctx context.Context, departmentID int) (CompensationStream, error)

	GetDepartment(ctx context.Context, id int) (*Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	ListDepartmentEmployees(ctx context.Context, departmentID int) ([]Employee, error)
}

// TraceSink receives observability messages from the aggregator.
// Deliveries are fire-and-forget: the aggregator never lets a sink
// error fail the computation.
type TraceSink interface {
	RecordRow(ctx context.Context, row RowTrace) error
	RecordSummary(ctx context.Context, summary SummaryTrace) error
}

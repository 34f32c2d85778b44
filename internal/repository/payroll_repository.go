package repository

import (
	"context"
	"database/sql"

	"github.com/locvowork/payroll_report_sample/internal/domain"
	"github.com/locvowork/payroll_report_sample/internal/repository/builder"
)

type payrollRepository struct {
	db *sql.DB
}

// NewPayrollRepository creates a new instance of PayrollRepository
func NewPayrollRepository(db *sql.DB) domain.PayrollRepository {
	return &payrollRepository{db: db}
}

func (r *payrollRepository) StreamDepartmentCompensation(ctx context.Context, departmentID int) (domain.CompensationStream, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("e.id", "e.first_name", "e.last_name", "s.salary", "s.bonus").
		From("employees e").
		Join("INNER", "salaries s", "e.id = s.employee_id").
		Where("e.department_id = ?", departmentID).
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &compensationStream{rows: rows}, nil
}

func (r *payrollRepository) GetDepartment(ctx context.Context, id int) (*domain.Department, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "name", "manager_id").
		From("departments").
		Where("id = ?", id).
		Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	var d domain.Department
	var managerID sql.NullInt64
	if err := row.Scan(&d.ID, &d.Name, &managerID); err != nil {
		return nil, err
	}
	if managerID.Valid {
		id := int(managerID.Int64)
		d.ManagerID = &id
	}
	return &d, nil
}

func (r *payrollRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "name", "manager_id").
		From("departments").
		OrderBy("id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []domain.Department
	for rows.Next() {
		var d domain.Department
		var managerID sql.NullInt64
		if err := rows.Scan(&d.ID, &d.Name, &managerID); err != nil {
			return nil, err
		}
		if managerID.Valid {
			id := int(managerID.Int64)
			d.ManagerID = &id
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *payrollRepository) ListDepartmentEmployees(ctx context.Context, departmentID int) ([]domain.Employee, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "first_name", "last_name", "department_id").
		From("employees").
		Where("department_id = ?", departmentID).
		OrderBy("id ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		var deptID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &deptID); err != nil {
			return nil, err
		}
		if deptID.Valid {
			id := int(deptID.Int64)
			e.DepartmentID = &id
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// compensationStream adapts *sql.Rows to domain.CompensationStream.
type compensationStream struct {
	rows *sql.Rows
}

func (s *compensationStream) Next() bool {
	return s.rows.Next()
}

func (s *compensationStream) Row() (*domain.CompensationRow, error) {
	var row domain.CompensationRow
	var bonus sql.NullInt64
	if err := s.rows.Scan(&row.EmployeeID, &row.FirstName, &row.LastName, &row.Salary, &bonus); err != nil {
		return nil, err
	}
	if bonus.Valid {
		b := bonus.Int64
		row.Bonus = &b
	}
	return &row, nil
}

func (s *compensationStream) Err() error {
	return s.rows.Err()
}

func (s *compensationStream) Close() error {
	return s.rows.Close()
}

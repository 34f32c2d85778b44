package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/locvowork/payroll_report_sample/internal/domain"
)

type DataSeeder struct {
	db *sql.DB
}

func NewDataSeeder(db *sql.DB) *DataSeeder {
	return &DataSeeder{db: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id INT PRIMARY KEY,
		name TEXT NOT NULL,
		manager_id INT
	)`,
	`CREATE TABLE IF NOT EXISTS employees (
		id INT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		department_id INT REFERENCES departments (id)
	)`,
	`CREATE TABLE IF NOT EXISTS salaries (
		employee_id INT PRIMARY KEY REFERENCES employees (id),
		salary BIGINT NOT NULL,
		bonus BIGINT
	)`,
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// Demo dataset. Department 2 has no employees, employee 203 has no
// salary row, employee 204 is unassigned, and department 2's manager
// reference dangles.
var (
	seedDepartments = []domain.Department{
		{ID: 1, Name: "Engineering", ManagerID: intPtr(201)},
		{ID: 2, Name: "Marketing", ManagerID: intPtr(299)},
		{ID: 3, Name: "Finance", ManagerID: nil},
	}
	seedEmployees = []domain.Employee{
		{ID: 201, FirstName: "John", LastName: "Doe", DepartmentID: intPtr(1)},
		{ID: 202, FirstName: "Jane", LastName: "Smith", DepartmentID: intPtr(1)},
		{ID: 203, FirstName: "Alice", LastName: "Brown", DepartmentID: intPtr(3)},
		{ID: 204, FirstName: "Bob", LastName: "Stone", DepartmentID: nil},
	}
	seedSalaries = []domain.Salary{
		{EmployeeID: 201, Salary: 50000, Bonus: int64Ptr(5000)},
		{EmployeeID: 202, Salary: 55000, Bonus: int64Ptr(5500)},
		{EmployeeID: 204, Salary: 40000, Bonus: nil},
	}
)

// EnsureSchema creates the payroll tables if they do not exist.
func (ds *DataSeeder) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := ds.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// SeedData loads the demo dataset into the payroll tables.
func (ds *DataSeeder) SeedData(ctx context.Context) error {
	start := time.Now()
	fmt.Println("🚀 Seeding payroll data...")

	if err := ds.EnsureSchema(ctx); err != nil {
		return err
	}

	tx, err := ds.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deptStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO departments (id, name, manager_id)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer deptStmt.Close()

	for _, d := range seedDepartments {
		if _, err := deptStmt.ExecContext(ctx, d.ID, d.Name, nullableInt(d.ManagerID)); err != nil {
			return fmt.Errorf("failed to insert department %d: %w", d.ID, err)
		}
	}
	fmt.Printf("✅ Created %d departments\n", len(seedDepartments))

	empStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO employees (id, first_name, last_name, department_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer empStmt.Close()

	for _, e := range seedEmployees {
		if _, err := empStmt.ExecContext(ctx, e.ID, e.FirstName, e.LastName, nullableInt(e.DepartmentID)); err != nil {
			return fmt.Errorf("failed to insert employee %d: %w", e.ID, err)
		}
	}
	fmt.Printf("✅ Created %d employees\n", len(seedEmployees))

	salStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO salaries (employee_id, salary, bonus)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer salStmt.Close()

	for _, s := range seedSalaries {
		if _, err := salStmt.ExecContext(ctx, s.EmployeeID, s.Salary, nullableInt64(s.Bonus)); err != nil {
			return fmt.Errorf("failed to insert salary for employee %d: %w", s.EmployeeID, err)
		}
	}
	fmt.Printf("✅ Created %d salary records\n", len(seedSalaries))

	if err := tx.Commit(); err != nil {
		return err
	}

	fmt.Printf("🎉 Done in %v\n", time.Since(start))
	return nil
}

// ClearData empties the payroll tables, children first.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	fmt.Println("🗑️  Clearing payroll data...")

	if _, err := ds.db.ExecContext(ctx, "DELETE FROM salaries"); err != nil {
		return fmt.Errorf("failed to delete salaries: %w", err)
	}
	if _, err := ds.db.ExecContext(ctx, "DELETE FROM employees"); err != nil {
		return fmt.Errorf("failed to delete employees: %w", err)
	}
	if _, err := ds.db.ExecContext(ctx, "DELETE FROM departments"); err != nil {
		return fmt.Errorf("failed to delete departments: %w", err)
	}

	fmt.Println("✅ Cleared payroll data")
	return nil
}

func nullableInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullableInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

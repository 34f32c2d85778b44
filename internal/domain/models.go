package domain

import "time"

// Department represents the departments table
type Department struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	ManagerID *int   `json:"manager_id" db:"manager_id"`
}

// Employee represents the employees table. DepartmentID is nullable:
// an employee may be unassigned.
type Employee struct {
	ID           int    `json:"id" db:"id"`
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	DepartmentID *int   `json:"department_id" db:"department_id"`
}

// Salary represents the salaries table (at most one row per employee)
type Salary struct {
	EmployeeID int    `json:"employee_id" db:"employee_id"`
	Salary     int64  `json:"salary" db:"salary"`
	Bonus      *int64 `json:"bonus" db:"bonus"`
}

// CompensationRow is one row of the employees INNER JOIN salaries result
// for a single department. Bonus is nil when the salary row carries none.
type CompensationRow struct {
	EmployeeID int    `json:"employee_id" db:"employee_id"`
	FirstName  string `json:"first_name" db:"first_name"`
	LastName   string `json:"last_name" db:"last_name"`
	Salary     int64  `json:"salary" db:"salary"`
	Bonus      *int64 `json:"bonus" db:"bonus"`
}

// RowTrace is the per-row message emitted to the trace sink during a scan.
type RowTrace struct {
	EmployeeID int    `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Salary     int64  `json:"salary"`
	Bonus      *int64 `json:"bonus"`
}

// SummaryTrace is the final message emitted once a department scan completes.
type SummaryTrace struct {
	DepartmentID int   `json:"department_id"`
	Total        int64 `json:"total"`
}

// ArchivedSummary is a department total retained by the summary archive.
type ArchivedSummary struct {
	DepartmentID int       `json:"department_id"`
	Total        int64     `json:"total"`
	ArchivedAt   time.Time `json:"archived_at"`
}

// DepartmentReport bundles the traced rows and total of one finished scan,
// for export surfaces.
type DepartmentReport struct {
	DepartmentID int        `json:"department_id"`
	Rows         []RowTrace `json:"rows"`
	Total        int64      `json:"total"`
}

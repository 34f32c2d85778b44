package builder

import "testing"

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "name").From("departments").Where("id = ?", 1).Build()
		expected := "SELECT id, name FROM departments WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != 1 {
			t.Errorf("expected args [1], got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("departments", "id", "name").Values(1, "Engineering").Build()
		expected := "INSERT INTO departments (id, name) VALUES ($1, $2)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != 1 || args[1] != "Engineering" {
			t.Errorf("expected args [1 Engineering], got %v", args)
		}
	})

	t.Run("Inner join with filter", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("e.id", "e.first_name", "s.salary", "s.bonus").
			From("employees e").
			Join("INNER", "salaries s", "e.id = s.employee_id").
			Where("e.department_id = ?", 1).
			Build()

		expected := "SELECT e.id, e.first_name, s.salary, s.bonus " +
			"FROM employees e INNER JOIN salaries s ON e.id = s.employee_id " +
			"WHERE e.department_id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != 1 {
			t.Errorf("expected args [1], got %v", args)
		}
	})

	t.Run("Multiple conditions and ordering", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "first_name", "last_name").
			From("employees").
			Where("department_id = ?", 2).
			Where("id > ?", 200).
			OrderBy("id ASC").
			Limit(10).
			Offset(5).
			Build()

		expected := "SELECT id, first_name, last_name FROM employees " +
			"WHERE department_id = $1 AND id > $2 ORDER BY id ASC LIMIT 10 OFFSET 5"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %v", args)
		}
	})
}

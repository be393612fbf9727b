package postgresql

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nmep-hris/payroll-backend-go/internal/pkg/validator"
)

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// isRowID reports whether id has the shape of a primary key. Any other value
// cannot match a row, so lookups report not found without querying.
func isRowID(id string) bool {
	return validator.IsValidUUID(id)
}

func toJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return b, nil
}

func fromJSON(raw []byte, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("unmarshal %T: %w", v, err)
	}
	return nil
}

// offset converts a 1-based page into a row offset.
func offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// nullableJSON marshals v, mapping a nil pointer to SQL NULL.
func nullableJSON[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return toJSON(v)
}

// employeeName is the display name expression for the employees alias e.
const employeeName = `concat_ws(' ', e.first_name, NULLIF(e.middle_name, ''), e.last_name)`

// sqlFilter accumulates AND-ed conditions with positional arguments. Each
// expression carries a single %d verb for its placeholder number.
type sqlFilter struct {
	conditions []string
	args       []any
}

func (f *sqlFilter) add(expr string, value any) {
	f.args = append(f.args, value)
	f.conditions = append(f.conditions, fmt.Sprintf(expr, len(f.args)))
}

func (f *sqlFilter) where() string {
	if len(f.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(f.conditions, " AND ")
}

// Package scratch generates collision-free temporary column names for the
// dataset package's target_is_sorted_by operator, which needs a scratch
// column during evaluation but must never let it leak into a caller-visible
// table.
package scratch

import "github.com/google/uuid"

// ColumnName returns a scratch column name guaranteed not to collide with
// any user-supplied column, short of deliberate sabotage: it embeds a
// random UUID.
func ColumnName() string {
	return "__scratch_" + uuid.NewString()
}

package vecutil

// FlattenColumns concatenates the values of each column in cols, in column
// order then row order, grounding the flatten_list utility used by
// contains_all to build the candidate set from one or more columns.
func FlattenColumns(cols ...[]any) []any {
	var out []any
	for _, c := range cols {
		out = append(out, c...)
	}
	return out
}

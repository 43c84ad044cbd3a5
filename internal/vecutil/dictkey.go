package vecutil

// GetDictKey looks up key in m, reporting ok=false when m is nil or the key
// is absent. It grounds the vectorized_get_dict_key utility used by the
// value-level-metadata and multiple-reference-count dataframe operators,
// whose cells hold per-row maps keyed by variable name.
func GetDictKey(m map[string]any, key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

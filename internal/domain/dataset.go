package domain

// Record is one data row keyed by raw header name. A nil value is null.
type Record map[string]any

// Dataset is a parsed tabular file: an ordered header and its rows.
// The engine treats it as read-only.
type Dataset struct {
	Header []string `json:"header"`
	Rows   []Record `json:"rows"`
}

// Column returns the values of the named (raw header) column in row order.
// Rows lacking the key yield nil.
func (d *Dataset) Column(name string) []any {
	out := make([]any, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[name]
	}
	return out
}

// RawColumn maps a normalized column name back to the raw header name it
// came from. ok is false when no header cell normalizes to name.
func (d *Dataset) RawColumn(name string) (string, bool) {
	for _, h := range d.Header {
		if NormalizeColumn(h) == name {
			return h, true
		}
	}
	return "", false
}

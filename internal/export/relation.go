package export

// Relation is an ordered rectangular row-set: a header row followed by data
// rows. It is the single output shape of every compiler and the single input
// shape of the CSV serializer.
//
// Rows are plain string slices in emission order. A Relation never re-sorts:
// downstream hashing treats row order as meaningful.
type Relation struct {
	// Name is the canonical relation name (e.g. "standard_hub"), used to
	// derive the output file name.
	Name string

	// Header is the exact header row. Part of the wire contract.
	Header []string

	// Rows are the data rows, each the same width as Header.
	Rows [][]string
}

// Append adds a data row. It panics if the row width does not match the
// header; emitting a ragged relation is a programmer error, not an input
// error.
func (r *Relation) Append(row ...string) {
	if len(row) != len(r.Header) {
		panic("export: row width does not match relation header")
	}
	r.Rows = append(r.Rows, row)
}

// Len returns the number of data rows (excluding the header).
func (r *Relation) Len() int {
	return len(r.Rows)
}

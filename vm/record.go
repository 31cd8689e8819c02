package vm

import "strings"

// Record holds the current input record and its field split, mirroring
// spec.md §4.5's Columns contract: field 0 is the whole record, fields are
// substrings split on the record's field separator, and SetColumn marks
// the record dirty so $0 is rejoined lazily on next read.
//
// Column 0 is rejoined with Record.OFS exactly as awk-family languages
// behave: editing any field invalidates the cached whole-record string
// until it is observed again.
type Record struct {
	// FS is program-configured before execution begins (spec.md §6 "the
	// frontend sets them before execution begins"); OFS defaults
	// to FS unless set separately by whatever assigns it (kept as a
	// distinct field rather than re-deriving it, the way awk keeps OFS
	// independent of FS).
	FS  string
	OFS string

	whole  string
	fields []string
	dirty  bool
}

// NewRecord constructs a Record with the given field separator. OFS
// defaults to fs.
func NewRecord(fs string) *Record {
	return &Record{FS: fs, OFS: fs}
}

// SetWhole installs line as the current record, re-splitting it into
// fields on FS. line should already have its trailing record-separator
// terminator stripped by the caller (the driver's read loop) — see
// SPEC_FULL.md's "newline inclusion" decision.
func (r *Record) SetWhole(line string) {
	r.whole = line
	r.fields = splitFields(line, r.FS)
	r.dirty = false
}

// splitFields implements the two historical awk field-splitting
// conventions: FS == " " (the default) splits on runs of whitespace and
// discards leading/trailing empties, any other non-empty FS is a literal
// substring separator used as-is (no regex, matching spec.md's Split
// instruction semantics, which are purely literal-separator based). An
// empty FS yields no fields.
func splitFields(line, fs string) []string {
	if fs == " " {
		return strings.Fields(line)
	}
	if fs == "" {
		return nil
	}
	return strings.Split(line, fs)
}

// Get returns field idx (0 is the whole record), or an empty string if
// idx is out of range (spec.md §4.5 GetColumn contract). Reading $0 after
// a SetColumn rejoins the fields with OFS first.
func (r *Record) Get(idx int64) *Str {
	if idx == 0 {
		if r.dirty {
			r.whole = strings.Join(r.fields, r.OFS)
			r.dirty = false
		}
		return FromOwned(r.whole)
	}
	if idx < 1 || int(idx) > len(r.fields) {
		return EmptyStr()
	}
	return FromLiteral(r.fields[idx-1])
}

// Set writes field idx and marks $0 dirty (re-joined on next Get(0)).
// Writing idx 0 replaces the whole record and re-splits it, matching the
// reciprocal awk convention ($0 = x resets every field).
func (r *Record) Set(idx int64, value string) {
	if idx == 0 {
		r.SetWhole(value)
		return
	}
	for int64(len(r.fields)) < idx {
		r.fields = append(r.fields, "")
	}
	r.fields[idx-1] = value
	r.dirty = true
}

// NumFields reports the number of fields in the current record.
func (r *Record) NumFields() int64 {
	return int64(len(r.fields))
}

// splitInto implements the Split instructions (spec.md §4.5): src is
// split by the literal separator sep, results are written starting at key
// 1, and the field count is returned. An empty sep splits into individual
// runes, one per key, matching the natural reading of "split by the empty
// string" in field-splitting languages.
func splitInto(src, sep string) []string {
	if sep == "" {
		runes := []rune(src)
		out := make([]string, len(runes))
		for i, r := range runes {
			out[i] = string(r)
		}
		return out
	}
	return strings.Split(src, sep)
}

package vm

import "strings"

// Str is the runtime string value described in spec.md §3/§4.1: an
// immutable, lazily-flattened sequence of bytes. It is always used behind a
// pointer so that force() can replace the node's contents in place without
// invalidating other holders of the same *Str (mirrors the original Rust
// source's Rc<RefCell<Inner>> handle — see original_source/bytecode.rs).
//
// A Str is one of three variants:
//   - literal: a borrow of an externally-owned byte range (the program
//     image, or a field slice of the current record). Zero-copy.
//   - boxed: an owned byte buffer, shareable across values.
//   - concat: a binary tree node awaiting a force().
//
// Only concat -> boxed transitions happen, and only once per node (the
// "force" in §4.1). literal and boxed are terminal.
type Str struct {
	kind strKind
	flat string // valid when kind == strLiteral || kind == strBoxed
	len  uint32 // saturated length, valid for every kind

	left  *Str // valid when kind == strConcat
	right *Str // valid when kind == strConcat
}

type strKind uint8

const (
	strLiteral strKind = iota
	strBoxed
	strConcat
)

const maxStrLen = ^uint32(0) // 2^32-1, the saturation ceiling from spec.md §3/§7

func saturatingAdd(a, b uint32) uint32 {
	sum := uint64(a) + uint64(b)
	if sum > uint64(maxStrLen) {
		return maxStrLen
	}
	return uint32(sum)
}

func conv_len(n int) uint32 {
	if uint64(n) > uint64(maxStrLen) {
		return maxStrLen
	}
	return uint32(n)
}

// FromLiteral builds a Str that borrows view without copying. Callers must
// ensure view outlives every Str built from it and every VM that might
// observe it — see SPEC_FULL.md's "program outlives VM" note.
func FromLiteral(view string) *Str {
	return &Str{kind: strLiteral, flat: view, len: conv_len(len(view))}
}

// FromOwned builds a Str around an already-owned buffer.
func FromOwned(buf string) *Str {
	return &Str{kind: strBoxed, flat: buf, len: conv_len(len(buf))}
}

// EmptyStr returns a fresh empty Str, used as the default for map lookups,
// out-of-range column reads, and newly allocated string registers.
func EmptyStr() *Str { return FromLiteral("") }

// Concat builds a new lazy concatenation node in O(1); no bytes are copied
// until something forces the result.
func Concat(a, b *Str) *Str {
	return &Str{
		kind:  strConcat,
		len:   saturatingAdd(a.len, b.len),
		left:  a,
		right: b,
	}
}

// Len returns the saturated byte length in O(1), without forcing.
func (s *Str) Len() uint32 {
	return s.len
}

// force flattens s in place using an explicit, depth-first, left-leaning
// traversal with a working stack of pending right children — never
// recursion, so a deep chain of field-join concatenations can't blow the
// Go stack (spec.md §4.1 / §9 "Lazy strings and interior mutation").
//
// Only the receiver's node is guaranteed flat afterwards; shared children
// reachable from other *Str handles keep their own lazy state until they
// are forced independently.
func (s *Str) force() {
	if s.kind != strConcat {
		return
	}

	var b strings.Builder
	b.Grow(int(s.len))

	pending := make([]*Str, 0, 16)
	cur := s
	for {
		for cur.kind == strConcat {
			pending = append(pending, cur.right)
			cur = cur.left
		}

		switch cur.kind {
		case strLiteral, strBoxed:
			b.WriteString(cur.flat)
		}

		if len(pending) == 0 {
			break
		}
		cur = pending[len(pending)-1]
		pending = pending[:len(pending)-1]
	}

	s.kind = strBoxed
	s.flat = b.String()
	s.left = nil
	s.right = nil
}

// WithBytes invokes fn with a contiguous view of s's bytes, forcing first.
func (s *Str) WithBytes(fn func(string)) {
	s.force()
	fn(s.flat)
}

// Materialise forces s and returns its flattened contents.
func (s *Str) Materialise() string {
	s.force()
	return s.flat
}

// StrEqual implements spec.md §4.1's equality fast paths before falling
// back to forcing both sides. StrMap keys and the EQStr/LTStr/...
// instructions do not go through it: StrMap compares materialised Go
// strings and the comparison instructions use StrCompare.
func StrEqual(a, b *Str) bool {
	if a.len != b.len {
		return false
	}
	if a.kind != strConcat && b.kind != strConcat {
		return a.flat == b.flat
	}
	a.force()
	b.force()
	return a.flat == b.flat
}

// StrCompare returns a value <0, 0, or >0 following lexicographic byte
// order, forcing both sides (comparison always forces, per §4.5).
func StrCompare(a, b *Str) int {
	a.force()
	b.force()
	return strings.Compare(a.flat, b.flat)
}

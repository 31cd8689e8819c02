package vm

// Register files, one per operand type (spec.md §3 "Register file"). Each
// Reg* type is a distinct named uint32, not a bare uint32, so a frontend
// (or a hand-written test program) cannot pass an Int register where a
// Float register is expected — the Go compiler enforces the "typed
// accessor contract" spec.md §4.5 describes at every call site that builds
// an Instruction (see instruction.go's typed constructors).
//
// Label indexes into the program's instruction slice directly; it is not a
// register file.
type (
	RegInt       uint32
	RegFloat     uint32
	RegStr       uint32
	RegIntInt    uint32 // IntMap<Int>
	RegIntFloat  uint32 // IntMap<Float>
	RegIntStr    uint32 // IntMap<String>
	RegStrInt    uint32 // StrMap<Int>
	RegStrFloat  uint32 // StrMap<Float>
	RegStrStr    uint32 // StrMap<String>
	RegIterInt   uint32 // Iter<Int>
	RegIterFloat uint32 // Iter<Float> — declared for type-system symmetry with
	// the other eleven register files; no opcode in this instruction set
	// writes to it, mirroring the original source's own unused
	// iters_float: Vec<runtime::Iter<Float>> field (see SPEC_FULL.md).
	RegIterStr uint32

	Label uint32
)

// RegisterCounts sizes every register file at VM construction time. The
// frontend is responsible for ensuring every Reg*.index used by a compiled
// program is within the matching count (spec.md §3 "Lifecycle"); an
// out-of-range register is a fatal VM error (errInvariant), never resized
// mid-program.
type RegisterCounts struct {
	Int       int
	Float     int
	Str       int
	IntInt    int
	IntFloat  int
	IntStr    int
	StrInt    int
	StrFloat  int
	StrStr    int
	IterInt   int
	IterFloat int
	IterStr   int
}

// registerFile holds the twelve per-type vectors. All are allocated once at
// VM construction, sized by RegisterCounts, and never reallocated
// afterwards — the Lifecycle rule in spec.md §3.
type registerFile struct {
	ints   []int64
	floats []float64
	strs   []*Str

	mapIntInt   []*IntMap[int64]
	mapIntFloat []*IntMap[float64]
	mapIntStr   []*IntMap[*Str]

	mapStrInt   []*StrMap[int64]
	mapStrFloat []*StrMap[float64]
	mapStrStr   []*StrMap[*Str]

	iterInt   []*Iter[int64]
	iterFloat []*Iter[int64] // unused, see RegIterFloat's doc comment
	iterStr   []*Iter[string]
}

func newRegisterFile(counts RegisterCounts) *registerFile {
	rf := &registerFile{
		ints:        make([]int64, counts.Int),
		floats:      make([]float64, counts.Float),
		strs:        make([]*Str, counts.Str),
		mapIntInt:   make([]*IntMap[int64], counts.IntInt),
		mapIntFloat: make([]*IntMap[float64], counts.IntFloat),
		mapIntStr:   make([]*IntMap[*Str], counts.IntStr),
		mapStrInt:   make([]*StrMap[int64], counts.StrInt),
		mapStrFloat: make([]*StrMap[float64], counts.StrFloat),
		mapStrStr:   make([]*StrMap[*Str], counts.StrStr),
		iterInt:     make([]*Iter[int64], counts.IterInt),
		iterFloat:   make([]*Iter[int64], counts.IterFloat),
		iterStr:     make([]*Iter[string], counts.IterStr),
	}

	for i := range rf.strs {
		rf.strs[i] = EmptyStr()
	}
	for i := range rf.mapIntInt {
		rf.mapIntInt[i] = NewIntMap[int64]()
	}
	for i := range rf.mapIntFloat {
		rf.mapIntFloat[i] = NewIntMap[float64]()
	}
	for i := range rf.mapIntStr {
		rf.mapIntStr[i] = NewIntMap[*Str]()
	}
	for i := range rf.mapStrInt {
		rf.mapStrInt[i] = NewStrMap[int64]()
	}
	for i := range rf.mapStrFloat {
		rf.mapStrFloat[i] = NewStrMap[float64]()
	}
	for i := range rf.mapStrStr {
		rf.mapStrStr[i] = NewStrMap[*Str]()
	}

	return rf
}

// The accessors below are the "typed accessor contract" at the VM's
// boundary: every one of them either returns the exact Go type the caller
// asked for, or a *FatalError wrapping errInvariant for an out-of-range
// index (spec.md §3 "The frontend is responsible for ensuring Reg<T>.index
// is in range; out-of-range is a fatal VM error").

func (rf *registerFile) Int(r RegInt) (int64, error) {
	if int(r) >= len(rf.ints) {
		return 0, &FatalError{Err: errInvariant}
	}
	return rf.ints[r], nil
}

func (rf *registerFile) SetInt(r RegInt, v int64) error {
	if int(r) >= len(rf.ints) {
		return &FatalError{Err: errInvariant}
	}
	rf.ints[r] = v
	return nil
}

func (rf *registerFile) Float(r RegFloat) (float64, error) {
	if int(r) >= len(rf.floats) {
		return 0, &FatalError{Err: errInvariant}
	}
	return rf.floats[r], nil
}

func (rf *registerFile) SetFloat(r RegFloat, v float64) error {
	if int(r) >= len(rf.floats) {
		return &FatalError{Err: errInvariant}
	}
	rf.floats[r] = v
	return nil
}

func (rf *registerFile) Str(r RegStr) (*Str, error) {
	if int(r) >= len(rf.strs) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.strs[r], nil
}

func (rf *registerFile) SetStr(r RegStr, v *Str) error {
	if int(r) >= len(rf.strs) {
		return &FatalError{Err: errInvariant}
	}
	rf.strs[r] = v
	return nil
}

func (rf *registerFile) IntInt(r RegIntInt) (*IntMap[int64], error) {
	if int(r) >= len(rf.mapIntInt) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.mapIntInt[r], nil
}

func (rf *registerFile) IntFloat(r RegIntFloat) (*IntMap[float64], error) {
	if int(r) >= len(rf.mapIntFloat) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.mapIntFloat[r], nil
}

func (rf *registerFile) IntStr(r RegIntStr) (*IntMap[*Str], error) {
	if int(r) >= len(rf.mapIntStr) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.mapIntStr[r], nil
}

func (rf *registerFile) StrInt(r RegStrInt) (*StrMap[int64], error) {
	if int(r) >= len(rf.mapStrInt) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.mapStrInt[r], nil
}

func (rf *registerFile) StrFloat(r RegStrFloat) (*StrMap[float64], error) {
	if int(r) >= len(rf.mapStrFloat) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.mapStrFloat[r], nil
}

func (rf *registerFile) StrStr(r RegStrStr) (*StrMap[*Str], error) {
	if int(r) >= len(rf.mapStrStr) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.mapStrStr[r], nil
}

func (rf *registerFile) IterInt(r RegIterInt) (*Iter[int64], error) {
	if int(r) >= len(rf.iterInt) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.iterInt[r], nil
}

func (rf *registerFile) SetIterInt(r RegIterInt, it *Iter[int64]) error {
	if int(r) >= len(rf.iterInt) {
		return &FatalError{Err: errInvariant}
	}
	rf.iterInt[r] = it
	return nil
}

func (rf *registerFile) IterStr(r RegIterStr) (*Iter[string], error) {
	if int(r) >= len(rf.iterStr) {
		return nil, &FatalError{Err: errInvariant}
	}
	return rf.iterStr[r], nil
}

func (rf *registerFile) SetIterStr(r RegIterStr, it *Iter[string]) error {
	if int(r) >= len(rf.iterStr) {
		return &FatalError{Err: errInvariant}
	}
	rf.iterStr[r] = it
	return nil
}

package vm

// Instruction is the flat, fixed-shape representation every Opcode
// variant is lowered into. Rather than a Go sum type (which the language
// doesn't have), this follows the teacher's (KTStephano-GVM) approach of a
// single struct wide enough to hold any instruction's operands, built only
// through the typed constructors below — each constructor accepts exactly
// the Reg* types its opcode's §4.5 contract calls for, so a caller cannot
// construct, say, an AddInt with a RegFloat destination. The interpreter's
// dispatch switch (interp.go) then trusts Op to say which fields are
// meaningful, with no runtime type tag on the operands themselves.
type Instruction struct {
	Op Opcode

	Dst uint32
	A   uint32
	B   uint32
	C   uint32

	Label Label

	ImmInt   int64
	ImmFloat float64
	ImmStr   *Str
}

// --- Constants ---

func StoreConstInt(dst RegInt, v int64) Instruction {
	return Instruction{Op: OpStoreConstInt, Dst: uint32(dst), ImmInt: v}
}

func StoreConstFloat(dst RegFloat, v float64) Instruction {
	return Instruction{Op: OpStoreConstFloat, Dst: uint32(dst), ImmFloat: v}
}

// StoreConstStr's v should be a *Str built with FromLiteral over a byte
// range owned by the program image, per spec.md §4.5's "the literal is a
// Literal view bound to the program's lifetime".
func StoreConstStr(dst RegStr, v *Str) Instruction {
	return Instruction{Op: OpStoreConstStr, Dst: uint32(dst), ImmStr: v}
}

// --- Conversions ---

func IntToFloatI(dst RegFloat, src RegInt) Instruction {
	return Instruction{Op: OpIntToFloat, Dst: uint32(dst), A: uint32(src)}
}
func FloatToIntI(dst RegInt, src RegFloat) Instruction {
	return Instruction{Op: OpFloatToInt, Dst: uint32(dst), A: uint32(src)}
}
func IntToStrI(dst RegStr, src RegInt) Instruction {
	return Instruction{Op: OpIntToStr, Dst: uint32(dst), A: uint32(src)}
}
func FloatToStrI(dst RegStr, src RegFloat) Instruction {
	return Instruction{Op: OpFloatToStr, Dst: uint32(dst), A: uint32(src)}
}
func StrToIntI(dst RegInt, src RegStr) Instruction {
	return Instruction{Op: OpStrToInt, Dst: uint32(dst), A: uint32(src)}
}
func StrToFloatI(dst RegFloat, src RegStr) Instruction {
	return Instruction{Op: OpStrToFloat, Dst: uint32(dst), A: uint32(src)}
}

// --- Arithmetic ---

func AddInt(dst, a, b RegInt) Instruction {
	return Instruction{Op: OpAddInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func AddFloat(dst, a, b RegFloat) Instruction {
	return Instruction{Op: OpAddFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func SubInt(dst, a, b RegInt) Instruction {
	return Instruction{Op: OpSubInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func SubFloat(dst, a, b RegFloat) Instruction {
	return Instruction{Op: OpSubFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func MulInt(dst, a, b RegInt) Instruction {
	return Instruction{Op: OpMulInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func MulFloat(dst, a, b RegFloat) Instruction {
	return Instruction{Op: OpMulFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}

// DivInt always widens: Int/Int -> Float (spec.md §4.5).
func DivInt(dst RegFloat, a, b RegInt) Instruction {
	return Instruction{Op: OpDivInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func DivFloat(dst, a, b RegFloat) Instruction {
	return Instruction{Op: OpDivFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func ModInt(dst, a, b RegInt) Instruction {
	return Instruction{Op: OpModInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func ModFloat(dst, a, b RegFloat) Instruction {
	return Instruction{Op: OpModFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func NegInt(dst, src RegInt) Instruction {
	return Instruction{Op: OpNegInt, Dst: uint32(dst), A: uint32(src)}
}
func NegFloat(dst, src RegFloat) Instruction {
	return Instruction{Op: OpNegFloat, Dst: uint32(dst), A: uint32(src)}
}
func NotInt(dst, src RegInt) Instruction {
	return Instruction{Op: OpNotInt, Dst: uint32(dst), A: uint32(src)}
}

// --- String ---

func ConcatStr(dst, a, b RegStr) Instruction {
	return Instruction{Op: OpConcat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func Match(dst RegInt, subject, pattern RegStr) Instruction {
	return Instruction{Op: OpMatch, Dst: uint32(dst), A: uint32(subject), B: uint32(pattern)}
}
func Print(src RegStr) Instruction {
	return Instruction{Op: OpPrint, A: uint32(src)}
}

// GetLine reads the next line from path into out, setting ok to 1 unless
// the file is at EOF (spec.md §4.4).
func GetLine(ok RegInt, out RegStr, path RegStr) Instruction {
	return Instruction{Op: OpGetLine, Dst: uint32(ok), A: uint32(out), B: uint32(path)}
}

// --- Comparison ---

func LTInt(dst RegInt, a, b RegInt) Instruction {
	return Instruction{Op: OpLTInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func LTFloat(dst RegInt, a, b RegFloat) Instruction {
	return Instruction{Op: OpLTFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func LTStr(dst RegInt, a, b RegStr) Instruction {
	return Instruction{Op: OpLTStr, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func GTInt(dst RegInt, a, b RegInt) Instruction {
	return Instruction{Op: OpGTInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func GTFloat(dst RegInt, a, b RegFloat) Instruction {
	return Instruction{Op: OpGTFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func GTStr(dst RegInt, a, b RegStr) Instruction {
	return Instruction{Op: OpGTStr, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func LTEInt(dst RegInt, a, b RegInt) Instruction {
	return Instruction{Op: OpLTEInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func LTEFloat(dst RegInt, a, b RegFloat) Instruction {
	return Instruction{Op: OpLTEFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func LTEStr(dst RegInt, a, b RegStr) Instruction {
	return Instruction{Op: OpLTEStr, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func GTEInt(dst RegInt, a, b RegInt) Instruction {
	return Instruction{Op: OpGTEInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func GTEFloat(dst RegInt, a, b RegFloat) Instruction {
	return Instruction{Op: OpGTEFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func GTEStr(dst RegInt, a, b RegStr) Instruction {
	return Instruction{Op: OpGTEStr, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func EQInt(dst RegInt, a, b RegInt) Instruction {
	return Instruction{Op: OpEQInt, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func EQFloat(dst RegInt, a, b RegFloat) Instruction {
	return Instruction{Op: OpEQFloat, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}
func EQStr(dst RegInt, a, b RegStr) Instruction {
	return Instruction{Op: OpEQStr, Dst: uint32(dst), A: uint32(a), B: uint32(b)}
}

// --- Columns ---

func GetColumn(dst RegStr, idx RegInt) Instruction {
	return Instruction{Op: OpGetColumn, Dst: uint32(dst), A: uint32(idx)}
}
func SetColumn(idx RegInt, src RegStr) Instruction {
	return Instruction{Op: OpSetColumn, Dst: uint32(idx), A: uint32(src)}
}

// --- Split ---

func SplitInt(count RegInt, src RegStr, dstMap RegIntStr, sep RegStr) Instruction {
	return Instruction{Op: OpSplitInt, Dst: uint32(count), A: uint32(src), B: uint32(dstMap), C: uint32(sep)}
}
func SplitStr(count RegInt, src RegStr, dstMap RegStrStr, sep RegStr) Instruction {
	return Instruction{Op: OpSplitStr, Dst: uint32(count), A: uint32(src), B: uint32(dstMap), C: uint32(sep)}
}

// --- Maps ---

func LookupIntInt(dst RegInt, m RegIntInt, key RegInt) Instruction {
	return Instruction{Op: OpLookupIntInt, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func LookupIntFloat(dst RegFloat, m RegIntFloat, key RegInt) Instruction {
	return Instruction{Op: OpLookupIntFloat, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func LookupIntStr(dst RegStr, m RegIntStr, key RegInt) Instruction {
	return Instruction{Op: OpLookupIntStr, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func LookupStrInt(dst RegInt, m RegStrInt, key RegStr) Instruction {
	return Instruction{Op: OpLookupStrInt, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func LookupStrFloat(dst RegFloat, m RegStrFloat, key RegStr) Instruction {
	return Instruction{Op: OpLookupStrFloat, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func LookupStrStr(dst RegStr, m RegStrStr, key RegStr) Instruction {
	return Instruction{Op: OpLookupStrStr, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}

func ContainsIntInt(dst RegInt, m RegIntInt, key RegInt) Instruction {
	return Instruction{Op: OpContainsIntInt, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func ContainsIntFloat(dst RegInt, m RegIntFloat, key RegInt) Instruction {
	return Instruction{Op: OpContainsIntFloat, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func ContainsIntStr(dst RegInt, m RegIntStr, key RegInt) Instruction {
	return Instruction{Op: OpContainsIntStr, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func ContainsStrInt(dst RegInt, m RegStrInt, key RegStr) Instruction {
	return Instruction{Op: OpContainsStrInt, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func ContainsStrFloat(dst RegInt, m RegStrFloat, key RegStr) Instruction {
	return Instruction{Op: OpContainsStrFloat, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}
func ContainsStrStr(dst RegInt, m RegStrStr, key RegStr) Instruction {
	return Instruction{Op: OpContainsStrStr, Dst: uint32(dst), A: uint32(m), B: uint32(key)}
}

func StoreIntInt(m RegIntInt, key RegInt, val RegInt) Instruction {
	return Instruction{Op: OpStoreIntInt, Dst: uint32(m), A: uint32(key), B: uint32(val)}
}
func StoreIntFloat(m RegIntFloat, key RegInt, val RegFloat) Instruction {
	return Instruction{Op: OpStoreIntFloat, Dst: uint32(m), A: uint32(key), B: uint32(val)}
}
func StoreIntStr(m RegIntStr, key RegInt, val RegStr) Instruction {
	return Instruction{Op: OpStoreIntStr, Dst: uint32(m), A: uint32(key), B: uint32(val)}
}
func StoreStrInt(m RegStrInt, key RegStr, val RegInt) Instruction {
	return Instruction{Op: OpStoreStrInt, Dst: uint32(m), A: uint32(key), B: uint32(val)}
}
func StoreStrFloat(m RegStrFloat, key RegStr, val RegFloat) Instruction {
	return Instruction{Op: OpStoreStrFloat, Dst: uint32(m), A: uint32(key), B: uint32(val)}
}
func StoreStrStr(m RegStrStr, key RegStr, val RegStr) Instruction {
	return Instruction{Op: OpStoreStrStr, Dst: uint32(m), A: uint32(key), B: uint32(val)}
}

func IterBeginIntInt(dst RegIterInt, m RegIntInt) Instruction {
	return Instruction{Op: OpIterBeginIntInt, Dst: uint32(dst), A: uint32(m)}
}
func IterBeginIntFloat(dst RegIterInt, m RegIntFloat) Instruction {
	return Instruction{Op: OpIterBeginIntFloat, Dst: uint32(dst), A: uint32(m)}
}
func IterBeginIntStr(dst RegIterInt, m RegIntStr) Instruction {
	return Instruction{Op: OpIterBeginIntStr, Dst: uint32(dst), A: uint32(m)}
}
func IterBeginStrInt(dst RegIterStr, m RegStrInt) Instruction {
	return Instruction{Op: OpIterBeginStrInt, Dst: uint32(dst), A: uint32(m)}
}
func IterBeginStrFloat(dst RegIterStr, m RegStrFloat) Instruction {
	return Instruction{Op: OpIterBeginStrFloat, Dst: uint32(dst), A: uint32(m)}
}
func IterBeginStrStr(dst RegIterStr, m RegStrStr) Instruction {
	return Instruction{Op: OpIterBeginStrStr, Dst: uint32(dst), A: uint32(m)}
}

func IterHasNextInt(dst RegInt, it RegIterInt) Instruction {
	return Instruction{Op: OpIterHasNextInt, Dst: uint32(dst), A: uint32(it)}
}
func IterNextInt(dst RegInt, it RegIterInt) Instruction {
	return Instruction{Op: OpIterNextInt, Dst: uint32(dst), A: uint32(it)}
}
func IterHasNextStr(dst RegInt, it RegIterStr) Instruction {
	return Instruction{Op: OpIterHasNextStr, Dst: uint32(dst), A: uint32(it)}
}
func IterNextStr(dst RegStr, it RegIterStr) Instruction {
	return Instruction{Op: OpIterNextStr, Dst: uint32(dst), A: uint32(it)}
}

// --- Control ---

func JmpIf(cond RegInt, label Label) Instruction {
	return Instruction{Op: OpJmpIf, Dst: uint32(cond), Label: label}
}
func Jmp(label Label) Instruction {
	return Instruction{Op: OpJmp, Label: label}
}
func Halt() Instruction {
	return Instruction{Op: OpHalt}
}

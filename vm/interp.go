package vm

import (
	"bufio"
	"io"
	"math"
	"strconv"
)

// VM is the interpreter core (component F, spec.md §4.6): it owns every
// register file, the current record, and the two registries (component
// C/D), and is never re-entered (spec.md §5 — single-threaded, cooperative,
// instructions execute strictly in program order).
type VM struct {
	regs    *registerFile
	program []Instruction
	pc      int

	record     *Record
	regexCache *RegexCache
	fileReader *FileReader

	stdout *bufio.Writer
}

// New constructs a VM ready to run program against counts-sized register
// files. fs is the field separator the driver has already configured
// before execution begins (spec.md §6). stdout receives Print output.
func New(program []Instruction, counts RegisterCounts, fs string, stdout io.Writer) *VM {
	return &VM{
		regs:       newRegisterFile(counts),
		program:    program,
		record:     NewRecord(fs),
		regexCache: NewRegexCache(),
		fileReader: NewFileReader(),
		stdout:     bufio.NewWriter(stdout),
	}
}

// Record exposes the VM's current record so a driver can set it before
// each Run (one call per input line), the handoff spec.md §6 describes.
func (vm *VM) Record() *Record { return vm.record }

// Close tears down every handle the file-reader registry opened (spec.md
// §6: "no explicit close operation; all handles close on VM teardown").
func (vm *VM) Close() error {
	vm.fileReader.Close()
	return vm.stdout.Flush()
}

// PC reports the current program counter, mainly for a driver's debug
// mode (teacher's RunProgramDebugMode equivalent) and for tests.
func (vm *VM) PC() int { return vm.pc }

// ResetPC rewinds the program counter to the first instruction without
// touching any register file, the regex cache, or open file handles —
// used by a driver that re-runs the same program once per input record
// while letting accumulator-style registers persist across records.
func (vm *VM) ResetPC() { vm.pc = 0 }

// FileReader exposes the VM's file-reader façade so a driver can install a
// non-UTF-8 input transcoder (FileReader.SetEncoding) before running.
func (vm *VM) FileReader() *FileReader { return vm.fileReader }

// CurrentInstr returns the instruction the program counter points at, for a
// driver's debug dump; ok is false once the VM has run off the end.
func (vm *VM) CurrentInstr() (instr Instruction, ok bool) {
	if vm.pc < 0 || vm.pc >= len(vm.program) {
		return Instruction{}, false
	}
	return vm.program[vm.pc], true
}

// Halted reports whether the program counter has run past the last
// instruction. A program that reaches this state via Halt stops cleanly;
// one that reaches it without ever executing Halt is the "falling off the
// end" fatal case spec.md §4.6/§7 describes.
func (vm *VM) Halted() bool { return vm.pc >= len(vm.program) }

// Run executes instructions until Halt, a fatal error, or the program
// counter runs off the end (itself fatal — spec.md §4.6). It returns nil
// only when the program executed Halt.
func (vm *VM) Run() error {
	for {
		halted, err := vm.Step()
		if err != nil {
			return err
		}
		if halted {
			return nil
		}
	}
}

// Step executes exactly one instruction and reports whether the program
// has now halted. Used both by Run and by a single-step debugger.
func (vm *VM) Step() (halted bool, err error) {
	if vm.pc >= len(vm.program) {
		return false, &FatalError{Err: errInvariant, PC: vm.pc}
	}

	instr := vm.program[vm.pc]
	op := instr.Op
	nextPC := vm.pc + 1

	if err := vm.dispatch(instr, &nextPC); err != nil {
		if fe, ok := err.(*FatalError); ok {
			fe.PC = vm.pc
			fe.Op = op
			return false, fe
		}
		return false, &FatalError{Err: err, PC: vm.pc, Op: op}
	}

	vm.pc = nextPC

	if op == OpHalt {
		return true, nil
	}
	return false, nil
}

// dispatch is the tight fetch-decode-execute switch. Each case borrows its
// source register(s) into local scratch before writing the destination,
// so destination/source aliasing is always safe for arithmetic and
// comparison ops (spec.md §5 "Aliasing discipline").
func (vm *VM) dispatch(instr Instruction, nextPC *int) error {
	switch instr.Op {
	case OpNop:
		// no operation

	case OpStoreConstInt:
		return vm.regs.SetInt(RegInt(instr.Dst), instr.ImmInt)
	case OpStoreConstFloat:
		return vm.regs.SetFloat(RegFloat(instr.Dst), instr.ImmFloat)
	case OpStoreConstStr:
		return vm.regs.SetStr(RegStr(instr.Dst), instr.ImmStr)

	case OpIntToFloat:
		v, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetFloat(RegFloat(instr.Dst), IntToFloat(v))
	case OpFloatToInt:
		v, err := vm.regs.Float(RegFloat(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), FloatToInt(v))
	case OpIntToStr:
		v, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetStr(RegStr(instr.Dst), IntToStr(v))
	case OpFloatToStr:
		v, err := vm.regs.Float(RegFloat(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetStr(RegStr(instr.Dst), FloatToStr(v))
	case OpStrToInt:
		v, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), StrToInt(v.Materialise()))
	case OpStrToFloat:
		v, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetFloat(RegFloat(instr.Dst), StrToFloat(v.Materialise()))

	case OpAddInt:
		return vm.arithInt(instr, func(a, b int64) int64 { return a + b })
	case OpAddFloat:
		return vm.arithFloat(instr, func(a, b float64) float64 { return a + b })
	case OpSubInt:
		return vm.arithInt(instr, func(a, b int64) int64 { return a - b })
	case OpSubFloat:
		return vm.arithFloat(instr, func(a, b float64) float64 { return a - b })
	case OpMulInt:
		return vm.arithInt(instr, func(a, b int64) int64 { return a * b })
	case OpMulFloat:
		return vm.arithFloat(instr, func(a, b float64) float64 { return a * b })
	case OpDivInt:
		a, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		b, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		// Int/Int always widens to Float per spec.md §4.5; unlike ModInt,
		// division by zero here is ordinary float semantics (+/-Inf or
		// NaN), not a fatal arithmetic domain error.
		return vm.regs.SetFloat(RegFloat(instr.Dst), float64(a)/float64(b))
	case OpDivFloat:
		return vm.arithFloat(instr, func(a, b float64) float64 { return a / b })
	case OpModInt:
		a, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		b, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		if b == 0 {
			return &FatalError{Err: errDivisionByZero}
		}
		return vm.regs.SetInt(RegInt(instr.Dst), a%b)
	case OpModFloat:
		return vm.arithFloat(instr, math.Mod)
	case OpNegInt:
		a, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), -a)
	case OpNegFloat:
		a, err := vm.regs.Float(RegFloat(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetFloat(RegFloat(instr.Dst), -a)
	case OpNotInt:
		a, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		result := int64(0)
		if a == 0 {
			result = 1
		}
		return vm.regs.SetInt(RegInt(instr.Dst), result)

	case OpConcat:
		a, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		b, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetStr(RegStr(instr.Dst), Concat(a, b))
	case OpMatch:
		subj, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		pat, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		ok, err := vm.regexCache.Match(pat.Materialise(), subj.Materialise())
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(ok))
	case OpPrint:
		s, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		if _, err := vm.stdout.WriteString(s.Materialise()); err != nil {
			return &FatalError{Err: errIO}
		}
		if err := vm.stdout.WriteByte('\n'); err != nil {
			return &FatalError{Err: errIO}
		}
		return vm.stdout.Flush()

	case OpGetLine:
		path, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		var buf []byte
		ok, err := vm.fileReader.GetLine(path.Materialise(), &buf)
		if err != nil {
			return err
		}
		if err := vm.regs.SetStr(RegStr(instr.A), FromOwned(string(buf))); err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(ok))

	case OpLTInt:
		return vm.cmpInt(instr, func(c int) bool { return c < 0 })
	case OpGTInt:
		return vm.cmpInt(instr, func(c int) bool { return c > 0 })
	case OpLTEInt:
		return vm.cmpInt(instr, func(c int) bool { return c <= 0 })
	case OpGTEInt:
		return vm.cmpInt(instr, func(c int) bool { return c >= 0 })
	case OpEQInt:
		return vm.cmpInt(instr, func(c int) bool { return c == 0 })
	case OpLTFloat:
		return vm.cmpFloat(instr, func(c int) bool { return c < 0 })
	case OpGTFloat:
		return vm.cmpFloat(instr, func(c int) bool { return c > 0 })
	case OpLTEFloat:
		return vm.cmpFloat(instr, func(c int) bool { return c <= 0 })
	case OpGTEFloat:
		return vm.cmpFloat(instr, func(c int) bool { return c >= 0 })
	case OpEQFloat:
		return vm.cmpFloat(instr, func(c int) bool { return c == 0 })
	case OpLTStr:
		return vm.cmpStr(instr, func(c int) bool { return c < 0 })
	case OpGTStr:
		return vm.cmpStr(instr, func(c int) bool { return c > 0 })
	case OpLTEStr:
		return vm.cmpStr(instr, func(c int) bool { return c <= 0 })
	case OpGTEStr:
		return vm.cmpStr(instr, func(c int) bool { return c >= 0 })
	case OpEQStr:
		return vm.cmpStr(instr, func(c int) bool { return c == 0 })

	case OpGetColumn:
		idx, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetStr(RegStr(instr.Dst), vm.record.Get(idx))
	case OpSetColumn:
		idx, err := vm.regs.Int(RegInt(instr.Dst))
		if err != nil {
			return err
		}
		src, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		vm.record.Set(idx, src.Materialise())
		return nil

	case OpSplitInt:
		return vm.splitIntoIntMap(instr)
	case OpSplitStr:
		return vm.splitIntoStrMap(instr)

	case OpLookupIntInt:
		m, err := vm.regs.IntInt(RegIntInt(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), m.Lookup(key))
	case OpLookupIntFloat:
		m, err := vm.regs.IntFloat(RegIntFloat(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetFloat(RegFloat(instr.Dst), m.Lookup(key))
	case OpLookupIntStr:
		m, err := vm.regs.IntStr(RegIntStr(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		v := m.Lookup(key)
		if v == nil {
			v = EmptyStr()
		}
		return vm.regs.SetStr(RegStr(instr.Dst), v)
	case OpLookupStrInt:
		m, err := vm.regs.StrInt(RegStrInt(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), m.Lookup(key))
	case OpLookupStrFloat:
		m, err := vm.regs.StrFloat(RegStrFloat(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetFloat(RegFloat(instr.Dst), m.Lookup(key))
	case OpLookupStrStr:
		m, err := vm.regs.StrStr(RegStrStr(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		v := m.Lookup(key)
		if v == nil {
			v = EmptyStr()
		}
		return vm.regs.SetStr(RegStr(instr.Dst), v)

	case OpContainsIntInt:
		m, err := vm.regs.IntInt(RegIntInt(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(m.Contains(key)))
	case OpContainsIntFloat:
		m, err := vm.regs.IntFloat(RegIntFloat(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(m.Contains(key)))
	case OpContainsIntStr:
		m, err := vm.regs.IntStr(RegIntStr(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(m.Contains(key)))
	case OpContainsStrInt:
		m, err := vm.regs.StrInt(RegStrInt(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(m.Contains(key)))
	case OpContainsStrFloat:
		m, err := vm.regs.StrFloat(RegStrFloat(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(m.Contains(key)))
	case OpContainsStrStr:
		m, err := vm.regs.StrStr(RegStrStr(instr.A))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(m.Contains(key)))

	case OpStoreIntInt:
		m, err := vm.regs.IntInt(RegIntInt(instr.Dst))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		val, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		m.Store(key, val)
		return nil
	case OpStoreIntFloat:
		m, err := vm.regs.IntFloat(RegIntFloat(instr.Dst))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		val, err := vm.regs.Float(RegFloat(instr.B))
		if err != nil {
			return err
		}
		m.Store(key, val)
		return nil
	case OpStoreIntStr:
		m, err := vm.regs.IntStr(RegIntStr(instr.Dst))
		if err != nil {
			return err
		}
		key, err := vm.regs.Int(RegInt(instr.A))
		if err != nil {
			return err
		}
		val, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		m.Store(key, val)
		return nil
	case OpStoreStrInt:
		m, err := vm.regs.StrInt(RegStrInt(instr.Dst))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		val, err := vm.regs.Int(RegInt(instr.B))
		if err != nil {
			return err
		}
		m.Store(key, val)
		return nil
	case OpStoreStrFloat:
		m, err := vm.regs.StrFloat(RegStrFloat(instr.Dst))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		val, err := vm.regs.Float(RegFloat(instr.B))
		if err != nil {
			return err
		}
		m.Store(key, val)
		return nil
	case OpStoreStrStr:
		m, err := vm.regs.StrStr(RegStrStr(instr.Dst))
		if err != nil {
			return err
		}
		key, err := vm.regs.Str(RegStr(instr.A))
		if err != nil {
			return err
		}
		val, err := vm.regs.Str(RegStr(instr.B))
		if err != nil {
			return err
		}
		m.Store(key, val)
		return nil

	case OpIterBeginIntInt:
		m, err := vm.regs.IntInt(RegIntInt(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetIterInt(RegIterInt(instr.Dst), NewIntIter(m))
	case OpIterBeginIntFloat:
		m, err := vm.regs.IntFloat(RegIntFloat(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetIterInt(RegIterInt(instr.Dst), NewIntIter(m))
	case OpIterBeginIntStr:
		m, err := vm.regs.IntStr(RegIntStr(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetIterInt(RegIterInt(instr.Dst), NewIntIter(m))
	case OpIterBeginStrInt:
		m, err := vm.regs.StrInt(RegStrInt(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetIterStr(RegIterStr(instr.Dst), NewStrIter(m))
	case OpIterBeginStrFloat:
		m, err := vm.regs.StrFloat(RegStrFloat(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetIterStr(RegIterStr(instr.Dst), NewStrIter(m))
	case OpIterBeginStrStr:
		m, err := vm.regs.StrStr(RegStrStr(instr.A))
		if err != nil {
			return err
		}
		return vm.regs.SetIterStr(RegIterStr(instr.Dst), NewStrIter(m))

	case OpIterHasNextInt:
		it, err := vm.regs.IterInt(RegIterInt(instr.A))
		if err != nil {
			return err
		}
		ok, err := it.HasNext()
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(ok))
	case OpIterNextInt:
		it, err := vm.regs.IterInt(RegIterInt(instr.A))
		if err != nil {
			return err
		}
		k, err := it.Next()
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), k)
	case OpIterHasNextStr:
		it, err := vm.regs.IterStr(RegIterStr(instr.A))
		if err != nil {
			return err
		}
		ok, err := it.HasNext()
		if err != nil {
			return err
		}
		return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(ok))
	case OpIterNextStr:
		it, err := vm.regs.IterStr(RegIterStr(instr.A))
		if err != nil {
			return err
		}
		k, err := it.Next()
		if err != nil {
			return err
		}
		return vm.regs.SetStr(RegStr(instr.Dst), FromOwned(k))

	case OpJmpIf:
		cond, err := vm.regs.Int(RegInt(instr.Dst))
		if err != nil {
			return err
		}
		if cond != 0 {
			*nextPC = int(instr.Label)
		}
		return nil
	case OpJmp:
		*nextPC = int(instr.Label)
		return nil
	case OpHalt:
		*nextPC = len(vm.program)
		return nil

	default:
		return &FatalError{Err: errInvariant}
	}

	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func (vm *VM) arithInt(instr Instruction, op func(a, b int64) int64) error {
	a, err := vm.regs.Int(RegInt(instr.A))
	if err != nil {
		return err
	}
	b, err := vm.regs.Int(RegInt(instr.B))
	if err != nil {
		return err
	}
	return vm.regs.SetInt(RegInt(instr.Dst), op(a, b))
}

func (vm *VM) arithFloat(instr Instruction, op func(a, b float64) float64) error {
	a, err := vm.regs.Float(RegFloat(instr.A))
	if err != nil {
		return err
	}
	b, err := vm.regs.Float(RegFloat(instr.B))
	if err != nil {
		return err
	}
	return vm.regs.SetFloat(RegFloat(instr.Dst), op(a, b))
}

func (vm *VM) cmpInt(instr Instruction, pred func(c int) bool) error {
	a, err := vm.regs.Int(RegInt(instr.A))
	if err != nil {
		return err
	}
	b, err := vm.regs.Int(RegInt(instr.B))
	if err != nil {
		return err
	}
	c := 0
	switch {
	case a < b:
		c = -1
	case a > b:
		c = 1
	}
	return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(pred(c)))
}

func (vm *VM) cmpFloat(instr Instruction, pred func(c int) bool) error {
	a, err := vm.regs.Float(RegFloat(instr.A))
	if err != nil {
		return err
	}
	b, err := vm.regs.Float(RegFloat(instr.B))
	if err != nil {
		return err
	}
	c := 0
	switch {
	case a < b:
		c = -1
	case a > b:
		c = 1
	}
	return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(pred(c)))
}

func (vm *VM) cmpStr(instr Instruction, pred func(c int) bool) error {
	a, err := vm.regs.Str(RegStr(instr.A))
	if err != nil {
		return err
	}
	b, err := vm.regs.Str(RegStr(instr.B))
	if err != nil {
		return err
	}
	return vm.regs.SetInt(RegInt(instr.Dst), boolToInt(pred(StrCompare(a, b))))
}

func (vm *VM) splitIntoIntMap(instr Instruction) error {
	src, err := vm.regs.Str(RegStr(instr.A))
	if err != nil {
		return err
	}
	m, err := vm.regs.IntStr(RegIntStr(instr.B))
	if err != nil {
		return err
	}
	sep, err := vm.regs.Str(RegStr(instr.C))
	if err != nil {
		return err
	}

	parts := splitInto(src.Materialise(), sep.Materialise())
	for i, p := range parts {
		m.Store(int64(i+1), FromOwned(p))
	}
	return vm.regs.SetInt(RegInt(instr.Dst), int64(len(parts)))
}

func (vm *VM) splitIntoStrMap(instr Instruction) error {
	src, err := vm.regs.Str(RegStr(instr.A))
	if err != nil {
		return err
	}
	m, err := vm.regs.StrStr(RegStrStr(instr.B))
	if err != nil {
		return err
	}
	sep, err := vm.regs.Str(RegStr(instr.C))
	if err != nil {
		return err
	}

	parts := splitInto(src.Materialise(), sep.Materialise())
	for i, p := range parts {
		m.Store(FromOwned(strconv.Itoa(i+1)), FromOwned(p))
	}
	return vm.regs.SetInt(RegInt(instr.Dst), int64(len(parts)))
}

package vm

// Opcode enumerates the closed, statically-typed instruction set from
// spec.md §4.5, supplemented per SPEC_FULL.md with the original source's
// full per-type naming (AddInt/AddFloat rather than a single "Add"), the
// Neg opcodes, IterNext/IterHasNext, and Print.
//
// Every instruction carries typed register operands and there is no
// runtime operand-type dispatch: the decoded Op alone determines which
// Instruction fields the interpreter reads (see instruction.go).
type Opcode uint8

const (
	OpNop Opcode = iota

	// Constants
	OpStoreConstInt
	OpStoreConstFloat
	OpStoreConstStr

	// Conversions
	OpIntToFloat
	OpFloatToInt
	OpIntToStr
	OpFloatToStr
	OpStrToInt
	OpStrToFloat

	// Arithmetic
	OpAddInt
	OpAddFloat
	OpSubInt
	OpSubFloat
	OpMulInt
	OpMulFloat
	OpDivInt // widens: Int / Int -> Float
	OpDivFloat
	OpModInt // divisor 0 is fatal
	OpModFloat
	OpNegInt
	OpNegFloat
	OpNotInt // logical: 0 <-> 1

	// String
	OpConcat
	OpMatch
	OpPrint
	OpGetLine

	// Comparison (dst is always an Int register holding 0/1)
	OpLTInt
	OpLTFloat
	OpLTStr
	OpGTInt
	OpGTFloat
	OpGTStr
	OpLTEInt
	OpLTEFloat
	OpLTEStr
	OpGTEInt
	OpGTEFloat
	OpGTEStr
	OpEQInt
	OpEQFloat
	OpEQStr

	// Columns
	OpGetColumn
	OpSetColumn

	// Split
	OpSplitInt
	OpSplitStr

	// Map operations: Lookup/Contains/Store/IterBegin x {IntInt, IntFloat,
	// IntStr, StrInt, StrFloat, StrStr}
	OpLookupIntInt
	OpLookupIntFloat
	OpLookupIntStr
	OpLookupStrInt
	OpLookupStrFloat
	OpLookupStrStr
	OpContainsIntInt
	OpContainsIntFloat
	OpContainsIntStr
	OpContainsStrInt
	OpContainsStrFloat
	OpContainsStrStr
	OpStoreIntInt
	OpStoreIntFloat
	OpStoreIntStr
	OpStoreStrInt
	OpStoreStrFloat
	OpStoreStrStr
	OpIterBeginIntInt
	OpIterBeginIntFloat
	OpIterBeginIntStr
	OpIterBeginStrInt
	OpIterBeginStrFloat
	OpIterBeginStrStr

	// Iteration (supplemented per SPEC_FULL.md — the original left Iter<S>
	// as an unfinished PhantomData stub)
	OpIterHasNextInt
	OpIterNextInt
	OpIterHasNextStr
	OpIterNextStr

	// Control
	OpJmpIf
	OpJmp
	OpHalt

	opcodeCount
)

var opcodeNames = [opcodeCount]string{
	OpNop:               "nop",
	OpStoreConstInt:      "store_const_int",
	OpStoreConstFloat:    "store_const_float",
	OpStoreConstStr:      "store_const_str",
	OpIntToFloat:         "int_to_float",
	OpFloatToInt:         "float_to_int",
	OpIntToStr:           "int_to_str",
	OpFloatToStr:         "float_to_str",
	OpStrToInt:           "str_to_int",
	OpStrToFloat:         "str_to_float",
	OpAddInt:             "add_int",
	OpAddFloat:           "add_float",
	OpSubInt:             "sub_int",
	OpSubFloat:           "sub_float",
	OpMulInt:             "mul_int",
	OpMulFloat:           "mul_float",
	OpDivInt:             "div_int",
	OpDivFloat:           "div_float",
	OpModInt:             "mod_int",
	OpModFloat:           "mod_float",
	OpNegInt:             "neg_int",
	OpNegFloat:           "neg_float",
	OpNotInt:             "not_int",
	OpConcat:             "concat",
	OpMatch:              "match",
	OpPrint:              "print",
	OpGetLine:            "get_line",
	OpLTInt:              "lt_int",
	OpLTFloat:            "lt_float",
	OpLTStr:              "lt_str",
	OpGTInt:              "gt_int",
	OpGTFloat:            "gt_float",
	OpGTStr:              "gt_str",
	OpLTEInt:             "lte_int",
	OpLTEFloat:           "lte_float",
	OpLTEStr:             "lte_str",
	OpGTEInt:             "gte_int",
	OpGTEFloat:           "gte_float",
	OpGTEStr:             "gte_str",
	OpEQInt:              "eq_int",
	OpEQFloat:            "eq_float",
	OpEQStr:              "eq_str",
	OpGetColumn:          "get_column",
	OpSetColumn:          "set_column",
	OpSplitInt:           "split_int",
	OpSplitStr:           "split_str",
	OpLookupIntInt:       "lookup_int_int",
	OpLookupIntFloat:     "lookup_int_float",
	OpLookupIntStr:       "lookup_int_str",
	OpLookupStrInt:       "lookup_str_int",
	OpLookupStrFloat:     "lookup_str_float",
	OpLookupStrStr:       "lookup_str_str",
	OpContainsIntInt:     "contains_int_int",
	OpContainsIntFloat:   "contains_int_float",
	OpContainsIntStr:     "contains_int_str",
	OpContainsStrInt:     "contains_str_int",
	OpContainsStrFloat:   "contains_str_float",
	OpContainsStrStr:     "contains_str_str",
	OpStoreIntInt:        "store_int_int",
	OpStoreIntFloat:      "store_int_float",
	OpStoreIntStr:        "store_int_str",
	OpStoreStrInt:        "store_str_int",
	OpStoreStrFloat:      "store_str_float",
	OpStoreStrStr:        "store_str_str",
	OpIterBeginIntInt:    "iter_begin_int_int",
	OpIterBeginIntFloat:  "iter_begin_int_float",
	OpIterBeginIntStr:    "iter_begin_int_str",
	OpIterBeginStrInt:    "iter_begin_str_int",
	OpIterBeginStrFloat:  "iter_begin_str_float",
	OpIterBeginStrStr:    "iter_begin_str_str",
	OpIterHasNextInt:     "iter_has_next_int",
	OpIterNextInt:        "iter_next_int",
	OpIterHasNextStr:     "iter_has_next_str",
	OpIterNextStr:        "iter_next_str",
	OpJmpIf:              "jmp_if",
	OpJmp:                "jmp",
	OpHalt:               "halt",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "?unknown?"
}

var strToOpcode map[string]Opcode

func init() {
	strToOpcode = make(map[string]Opcode, len(opcodeNames))
	for op, name := range opcodeNames {
		if name != "" {
			strToOpcode[name] = Opcode(op)
		}
	}
}

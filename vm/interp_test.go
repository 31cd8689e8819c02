package vm

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleAndRun(t *testing.T, source string) (string, error) {
	t.Helper()
	program, err := Assemble(source)
	require.NoError(t, err)

	var out bytes.Buffer
	m := New(program.Instructions, program.Counts, " ", &out)
	defer m.Close()

	err = m.Run()
	return out.String(), err
}

// S1: writing to column 0 updates the current record without touching
// stdout (Print is the only instruction that writes to stdout).
func TestScenario_SetColumnUpdatesRecord(t *testing.T) {
	program, err := Assemble(`
		store_const_str s0 "hi"
		set_column i0 s0
		halt
	`)
	require.NoError(t, err)

	m := New(program.Instructions, program.Counts, " ", &bytes.Buffer{})
	defer m.Close()
	require.NoError(t, m.Run())

	assert.Equal(t, "hi", m.Record().Get(0).Materialise())
}

// S2: sum two ints, convert to string, print.
func TestScenario_SumInts(t *testing.T) {
	out, err := assembleAndRun(t, `
		store_const_int i0 2
		store_const_int i1 3
		add_int i2 i0 i1
		int_to_str s0 i2
		print s0
		halt
	`)
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

// S3: match /foo/ against each of three records, counting matches.
func TestScenario_RegexCount(t *testing.T) {
	lines := []string{"foo", "bar", "food"}

	program, err := Assemble(`
		match i1 s0 s1
		add_int i0 i0 i1
		halt
	`)
	require.NoError(t, err)

	var out bytes.Buffer
	m := New(program.Instructions, program.Counts, " ", &out)
	defer m.Close()

	for _, line := range lines {
		m.Record().SetWhole(line)
		require.NoError(t, m.regs.SetStr(RegStr(0), FromLiteral(line)))
		require.NoError(t, m.regs.SetStr(RegStr(1), FromLiteral("foo")))
		m.ResetPC()
		require.NoError(t, m.Run())
	}

	count, err := m.regs.Int(RegInt(0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

// S4: split "a,b,,c" on "," into a StrStr map, keys "1".."4".
func TestScenario_SplitAndIndex(t *testing.T) {
	program, err := Assemble(`
		store_const_str s0 "a,b,,c"
		store_const_str s1 ","
		split_str i0 s0 mss0 s1
		halt
	`)
	require.NoError(t, err)

	m := New(program.Instructions, program.Counts, " ", &bytes.Buffer{})
	defer m.Close()
	require.NoError(t, m.Run())

	count, err := m.regs.Int(RegInt(0))
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	mp, err := m.regs.StrStr(RegStrStr(0))
	require.NoError(t, err)
	assert.Equal(t, "a", mp.Lookup(FromLiteral("1")).Materialise())
	assert.Equal(t, "b", mp.Lookup(FromLiteral("2")).Materialise())
	assert.Equal(t, "", mp.Lookup(FromLiteral("3")).Materialise())
	assert.Equal(t, "c", mp.Lookup(FromLiteral("4")).Materialise())
}

// S5: 7 / 2 widens to Float 3.5, formats as "3.5".
func TestScenario_DivisionWidensToFloat(t *testing.T) {
	out, err := assembleAndRun(t, `
		store_const_int i0 7
		store_const_int i1 2
		div_int f0 i0 i1
		float_to_str s0 f0
		print s0
		halt
	`)
	require.NoError(t, err)
	assert.Equal(t, "3.5\n", out)
}

// S6: mod by zero halts the VM with the arithmetic-domain-error sentinel.
func TestScenario_ModuloZeroIsFatal(t *testing.T) {
	_, err := assembleAndRun(t, `
		store_const_int i0 5
		store_const_int i1 0
		mod_int i2 i0 i1
		halt
	`)
	require.Error(t, err)
	var fe *FatalError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, fe, errDivisionByZero)
	assert.Equal(t, OpModInt, fe.Op)
}

func TestVM_FallingOffTheEndIsFatal(t *testing.T) {
	program, err := Assemble(`store_const_int i0 1`)
	require.NoError(t, err)

	m := New(program.Instructions, program.Counts, " ", &bytes.Buffer{})
	defer m.Close()

	err = m.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvariant)
}

func TestVM_OutOfRangeRegisterIsFatal(t *testing.T) {
	instrs := []Instruction{AddInt(RegInt(0), RegInt(5), RegInt(0)), Halt()}
	m := New(instrs, RegisterCounts{Int: 1}, " ", &bytes.Buffer{})
	defer m.Close()

	err := m.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvariant)
}

func TestVM_GetLineReadsFirstLine(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/lines.txt"
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0o644))

	program, err := Assemble(`
		get_line i0 s0 s1
		halt
	`)
	require.NoError(t, err)

	m := New(program.Instructions, program.Counts, " ", &bytes.Buffer{})
	defer m.Close()
	require.NoError(t, m.regs.SetStr(RegStr(1), FromLiteral(path)))

	require.NoError(t, m.Run())
	ok, err := m.regs.Int(RegInt(0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, ok)
	s, err := m.regs.Str(RegStr(0))
	require.NoError(t, err)
	assert.Equal(t, "one\n", s.Materialise())
}

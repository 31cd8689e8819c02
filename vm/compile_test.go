package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble_LabelsAndJumps(t *testing.T) {
	program, err := Assemble(`
		store_const_int i0 0
		store_const_int i1 5
	loop:
		lt_int i2 i0 i1
		jmp_if i2 body
		jmp done
	body:
		store_const_int i3 1
		add_int i0 i0 i3
		jmp loop
	done:
		halt
	`)
	require.NoError(t, err)

	m := New(program.Instructions, program.Counts, " ", discard{})
	defer m.Close()
	require.NoError(t, m.Run())

	v, err := m.regs.Int(RegInt(0))
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)
}

func TestAssemble_CommentsAndBlankLinesIgnored(t *testing.T) {
	program, err := Assemble(`
		# a comment
		store_const_int i0 1 # trailing comment

		halt
	`)
	require.NoError(t, err)
	assert.Len(t, program.Instructions, 2)
}

func TestAssemble_StringEscapes(t *testing.T) {
	program, err := Assemble(`store_const_str s0 "a\tb\nc"`)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\nc", program.Instructions[0].ImmStr.Materialise())
}

func TestAssemble_UnknownMnemonicErrors(t *testing.T) {
	_, err := Assemble(`bogus i0 i1`)
	require.Error(t, err)
}

func TestAssemble_UndefinedLabelErrors(t *testing.T) {
	_, err := Assemble(`jmp nowhere`)
	require.Error(t, err)
}

func TestAssemble_WrongOperandCountErrors(t *testing.T) {
	_, err := Assemble(`add_int i0 i1`)
	require.Error(t, err)
}

func TestAssemble_RegisterCountsTrackHighWaterMark(t *testing.T) {
	program, err := Assemble(`
		store_const_int i3 1
		halt
	`)
	require.NoError(t, err)
	assert.Equal(t, 4, program.Counts.Int)
}

// discard is an io.Writer that drops everything, used where a test only
// cares about register/program state and not stdout.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

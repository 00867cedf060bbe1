package tags

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_WeightDefaultsToOne(t *testing.T) {
	tbl := NewTable(nil)
	assert.Equal(t, 1, tbl.Weight("unknown"))
}

func TestTable_SetWeightClamps(t *testing.T) {
	tbl := NewTable(nil)

	tbl.SetWeight("go", 3)
	tbl.SetWeight("rust", 0)
	tbl.SetWeight("c", -4)
	tbl.SetWeight("  ", 5)

	assert.Equal(t, 3, tbl.Weight("go"))
	assert.Equal(t, 1, tbl.Weight("rust"))
	assert.Equal(t, 1, tbl.Weight("c"))
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_RemoveWeight(t *testing.T) {
	tbl := NewTable(nil)
	tbl.SetWeight("go", 4)
	tbl.RemoveWeight("go")
	tbl.RemoveWeight("never-set")

	assert.Equal(t, 1, tbl.Weight("go"))
	assert.Zero(t, tbl.Len())
}

func TestTable_TagsAreTrimmed(t *testing.T) {
	tbl := NewTable(nil)
	require.NoError(t, tbl.SetWeight(" go ", 3))
	assert.Equal(t, 3, tbl.Weight("go"))

	tbl.RemoveWeight(" go ")
	assert.Zero(t, tbl.Len())
}

func TestTable_SetWeightRejectsLineBreaks(t *testing.T) {
	tbl := NewTable(nil)
	require.NoError(t, tbl.SetWeight("urgent", 2))

	for _, tag := range []string{"notes\nurgent", "notes\rurgent", "a\r\nb"} {
		err := tbl.SetWeight(tag, 7)
		assert.ErrorIs(t, err, ErrInvalidTag, tag)
	}
	assert.Equal(t, map[string]int{"urgent": 2}, tbl.Weights())

	data, err := tbl.MarshalBinary()
	require.NoError(t, err)
	dst := NewTable(nil)
	require.NoError(t, dst.UnmarshalBinary(data))
	assert.Equal(t, tbl.Weights(), dst.Weights())
}

func TestTable_MarshalSortedLines(t *testing.T) {
	tbl := NewTable(nil)
	tbl.SetWeight("zeta", 2)
	tbl.SetWeight("alpha", 5)

	data, err := tbl.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, "alpha:5\nzeta:2\n", string(data))
}

func TestTable_RoundTrip(t *testing.T) {
	src := NewTable(nil)
	src.SetWeight("go", 3)
	src.SetWeight("a:b", 2)
	src.SetWeight("exam", 7)

	data, err := src.MarshalBinary()
	require.NoError(t, err)

	dst := NewTable(nil)
	require.NoError(t, dst.UnmarshalBinary(data))
	assert.Equal(t, src.Weights(), dst.Weights())
}

// TestTable_UnmarshalSkipsMalformed verifies best-effort loading: bad lines
// are dropped and the rest still load.
func TestTable_UnmarshalSkipsMalformed(t *testing.T) {
	data := "go:3\n" +
		"no-separator\n" +
		"bad:abc\n" +
		"zero:0\n" +
		"negative:-2\n" +
		":4\n" +
		"\n" +
		"rust: 2\r\n"

	tbl := NewTable(nil)
	tbl.SetWeight("stale", 9)
	require.NoError(t, tbl.UnmarshalBinary([]byte(data)))

	assert.Equal(t, map[string]int{"go": 3, "rust": 2}, tbl.Weights())
}

func TestTable_UnmarshalSkipsOversizedLine(t *testing.T) {
	data := "go:3\n" + strings.Repeat("x", 128*1024) + "\nrust:2\n"

	tbl := NewTable(nil)
	require.NoError(t, tbl.UnmarshalBinary([]byte(data)))
	assert.Equal(t, map[string]int{"go": 3, "rust": 2}, tbl.Weights())
}

func TestTable_UnmarshalEmpty(t *testing.T) {
	tbl := NewTable(nil)
	tbl.SetWeight("go", 2)
	require.NoError(t, tbl.UnmarshalBinary(nil))
	assert.Zero(t, tbl.Len())
}

func TestParseLine(t *testing.T) {
	tag, w, err := ParseLine("exam:10")
	require.NoError(t, err)
	assert.Equal(t, "exam", tag)
	assert.Equal(t, 10, w)

	_, _, err = ParseLine("exam")
	assert.ErrorIs(t, err, ErrMissingSeparator)
	assert.ErrorIs(t, err, ErrData)

	_, _, err = ParseLine("exam:1.5")
	assert.ErrorIs(t, err, ErrInvalidWeight)

	_, _, err = ParseLine(" :2")
	assert.ErrorIs(t, err, ErrEmptyTag)
}

package skipkv

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayRendersEveryLevel(t *testing.T) {
	sl := newTestList[int, string](t, 7, WithSeed(11))
	for _, k := range []int{1, 4, 9, 10, 30, 40, 50, 60, 70} {
		sl.Insert(k, "A")
	}

	var buf bytes.Buffer
	require.NoError(t, sl.Display(&buf))
	out := buf.String()

	assert.Contains(t, out, "LEVEL")
	assert.Contains(t, out, "1:A 4:A 9:A 10:A 30:A 40:A 50:A 60:A 70:A")

	levels := sl.Levels()
	for i := range levels {
		require.True(t, strings.Contains(out, "| "+strconv.Itoa(i)+" "), "missing row for level %d:\n%s", i, out)
	}
}

func TestDisplayEmptyList(t *testing.T) {
	sl := newTestList[int, string](t, 3)

	var buf bytes.Buffer
	require.NoError(t, sl.Display(&buf))
	assert.Contains(t, buf.String(), "LEVEL")
	assert.Equal(t, [][]int{nil}, sl.Levels())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errBoom }

func TestDisplayReportsWriteErrors(t *testing.T) {
	sl := newTestList[int, string](t, 3)
	sl.Insert(1, "A")

	require.ErrorIs(t, sl.Display(failingWriter{}), errBoom)
}

func TestLevelsAreNestedSubsets(t *testing.T) {
	sl := newTestList[int, int](t, 9, WithSeed(31))
	for i := range 400 {
		sl.Insert((i*37)%401, i)
	}

	levels := sl.Levels()
	require.Len(t, levels, sl.Level()+1)
	require.Len(t, levels[0], 400)
	for i := 1; i < len(levels); i++ {
		below := make(map[int]bool, len(levels[i-1]))
		for _, k := range levels[i-1] {
			below[k] = true
		}
		for _, k := range levels[i] {
			require.True(t, below[k], "key %d on level %d but not on level %d", k, i, i-1)
		}
		require.LessOrEqual(t, len(levels[i]), len(levels[i-1]))
	}
}

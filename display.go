package skipkv

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Display renders one table row per occupied level, bottom level first,
// listing the key:value pairs linked on that level. It returns the error
// from writing to w.
func (sl *SkipList[K, V]) Display(w io.Writer) error {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	h := sl.head()
	rows := make([][]string, 0, sl.topLevel+1)
	for i := 0; i <= sl.topLevel; i++ {
		var b strings.Builder
		for n := h.forward[i]; n != nil; n = n.forward[i] {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%v:%v", n.key, n.value)
		}
		rows = append(rows, []string{strconv.Itoa(i), b.String()})
	}

	// Render has no error result, so the table is built in memory first.
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Level", "Entries"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write display: %w", err)
	}
	return nil
}

// Levels returns the keys linked on each level, indexed by level, from 0
// up to the current top level.
func (sl *SkipList[K, V]) Levels() [][]K {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	h := sl.head()
	levels := make([][]K, sl.topLevel+1)
	for i := range levels {
		for n := h.forward[i]; n != nil; n = n.forward[i] {
			levels[i] = append(levels[i], n.key)
		}
	}
	return levels
}

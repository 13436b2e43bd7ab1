package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	table := NewTable("Player", "W", "L")
	table.AddRow("Alice", "3", "0")
	table.AddRow("Bob", "1", "2")

	out := table.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "Player")
	assert.Contains(t, lines[3], "Alice")
	assert.Contains(t, lines[4], "Bob")
	// Every row renders at the same width.
	for _, line := range lines[1:] {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(line)))
	}
}

func TestTableDropsMalformedRow(t *testing.T) {
	table := NewTable("A", "B")
	table.AddRow("only-one-cell")

	assert.NotContains(t, table.String(), "only-one-cell")
}

func TestNotice(t *testing.T) {
	out := Warning("Cycle detected", "Alice, Bob, Carol beat each other in a loop")

	assert.Contains(t, out, "Cycle detected")
	assert.Contains(t, out, "⚠")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "╯")
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)

	assert.Equal(t, []string{"one two", "three", "four five"}, lines)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		autoApprove bool
		expected    bool
	}{
		{"yes", "yes\n", false, true},
		{"y", "y\n", false, true},
		{"no", "no\n", false, false},
		{"empty", "\n", false, false},
		{"eof", "", false, false},
		{"auto approve", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ok, err := Confirm(strings.NewReader(tt.input), &out, tt.autoApprove, "Proceed?")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			if !tt.autoApprove {
				assert.Contains(t, out.String(), "Proceed?")
			}
		})
	}
}

package ast

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, example1(), DefaultPrecision))

	want := "*\n" +
		"  +\n" +
		"    1.00\n" +
		"    2.00\n" +
		"  3.00\n"
	assert.Equal(t, want, buf.String())
}

func TestSprint_Precision(t *testing.T) {
	a := Arena{LiteralNode(2.5)}

	assert.Equal(t, "2.50\n", Sprint(a, 2))
	assert.Equal(t, "2.5000\n", Sprint(a, 4))
	assert.Equal(t, "2\n", Sprint(a, 0))
	assert.Equal(t, "2.50\n", Sprint(a, -1), "negative precision falls back to default")
}

func TestFprint_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, Arena{}, 2))
	assert.Empty(t, buf.String())
}

func TestFprint_BackwardIndex(t *testing.T) {
	tests := []struct {
		name  string
		arena Arena
	}{
		{name: "self reference", arena: Arena{BinaryNode(Add, 0, 0)}},
		{name: "cycle through a child", arena: Arena{
			BinaryNode(Add, 1, 2),
			BinaryNode(Multiply, 0, 2),
			LiteralNode(1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Fprint(&buf, tt.arena, 2)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "does not follow parent")
			assert.Empty(t, buf.String())
		})
	}
}

func TestFprint_DanglingIndex(t *testing.T) {
	var buf bytes.Buffer
	err := Fprint(&buf, Arena{BinaryNode(Add, 1, 2)}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

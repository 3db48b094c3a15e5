package readfiles

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelZ/Finite-Element-Analysis/types"
)

var fittingDeck = `**
** Exported by PrePoMax
**
*Heading
Fitting
**
*Node
1, 0, 0, 0
2, 1.5, 0, 0
3, 1.5, -2.25e-01, 0.1
42, 1.0, 2.0, 3.0
**
*Element, Type=C3D4, Elset=Solid
1, 1, 2, 3, 42
**
*Nset, Nset=Contact
2, 3,
42
*Nset, nset=Range, generate
10, 16, 3
*NSET, NSET=Nested
1, contact
*Nset, Nset=Contact
1
`

func createTempInpFile(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.inp")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

func TestReadCalculixNodes(t *testing.T) {
	{ // Test reading the node section of a full deck
		nt, err := ReadCalculixNodes(strings.NewReader(fittingDeck))
		require.NoError(t, err)
		assert.True(t, nt.SectionFound)
		assert.Equal(t, 4, nt.Len())
		assert.Equal(t, []types.NodeID{1, 2, 3, 42}, nt.Order)
		p, ok := nt.Lookup(3)
		assert.True(t, ok)
		assert.Equal(t, types.Point{X: 1.5, Y: -0.225, Z: 0.1}, p)
		p, _ = nt.Lookup(42)
		assert.Equal(t, types.Point{X: 1, Y: 2, Z: 3}, p)
	}
	{ // Test that a keyword line ends the section just like a comment does
		deck := "*NODE, NSET=Nall\n5, 1., 2., 3.\n6,4.,5.,6.\n*ELEMENT, TYPE=C3D8\n1, 5, 6, 7\n"
		nt, err := ReadCalculixNodes(strings.NewReader(deck))
		require.NoError(t, err)
		assert.Equal(t, 2, nt.Len())
		p, _ := nt.Lookup(6)
		assert.Equal(t, types.Point{X: 4, Y: 5, Z: 6}, p)
	}
	{ // Test accumulating more than one node section
		deck := "*Node\n1, 0, 0, 0\n** second block\n*Node\n2, 1, 1, 1\n"
		nt, err := ReadCalculixNodes(strings.NewReader(deck))
		require.NoError(t, err)
		assert.Equal(t, []types.NodeID{1, 2}, nt.Order)
	}
	{ // Test that output requests are not mistaken for node sections
		deck := "*Step\n*Node print, nset=Nall\nU\n*End step\n"
		nt, err := ReadCalculixNodes(strings.NewReader(deck))
		require.NoError(t, err)
		assert.False(t, nt.SectionFound)
		assert.Equal(t, 0, nt.Len())
	}
	{ // Test found but empty versus not found
		nt, err := ReadCalculixNodes(strings.NewReader("*Node\n**\n"))
		require.NoError(t, err)
		assert.True(t, nt.SectionFound)
		assert.Equal(t, 0, nt.Len())

		nt, err = ReadCalculixNodes(strings.NewReader("*Heading\nno nodes here\n"))
		require.NoError(t, err)
		assert.False(t, nt.SectionFound)
	}
}

func TestReadCalculixNodesMalformed(t *testing.T) {
	tests := []struct {
		name, deck, msg string
	}{
		{"missing coordinate", "*Node\n1, 0, 0\n", "expected 4 fields"},
		{"extra field", "*Node\n1, 0, 0, 0, 0\n", "expected 4 fields"},
		{"bad id", "*Node\n1a, 0, 0, 0\n", "invalid node id"},
		{"negative id", "*Node\n-5, 1.0, 2.0, 3.0\n", "invalid node id -5"},
		{"zero id", "*Node\n0, 1.0, 2.0, 3.0\n", "invalid node id 0"},
		{"bad coordinate", "*Node\n1, 0, x, 0\n", "invalid coordinate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCalculixNodes(strings.NewReader(tt.deck))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestReadCalculixNodesFile(t *testing.T) {
	tmpFile := createTempInpFile(t, fittingDeck)
	nt, err := ReadCalculixNodesFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, 4, nt.Len())

	_, err = ReadCalculixNodesFile(filepath.Join(t.TempDir(), "missing.inp"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadCalculixNodeSets(t *testing.T) {
	sets, err := ReadCalculixNodeSets(strings.NewReader(fittingDeck))
	require.NoError(t, err)
	assert.Equal(t, []types.NodeID{2, 3, 42, 1}, sets["CONTACT"])
	assert.Equal(t, []types.NodeID{10, 13, 16}, sets["RANGE"])
	assert.Equal(t, []types.NodeID{1, 2, 3, 42}, sets["NESTED"])

	ids, err := ReadCalculixNodeSet(strings.NewReader(fittingDeck), "range")
	require.NoError(t, err)
	assert.Equal(t, []types.NodeID{10, 13, 16}, ids)

	_, err = ReadCalculixNodeSet(strings.NewReader(fittingDeck), "Missing")
	assert.True(t, errors.Is(err, ErrNodeSetNotFound))

	{ // Test node sets attached to node sections
		deck := "*Node, Nset=Corner\n7, 0, 0, 0\n8, 1, 0, 0\n"
		ids, err = ReadCalculixNodeSet(strings.NewReader(deck), "CORNER")
		require.NoError(t, err)
		assert.Equal(t, []types.NodeID{7, 8}, ids)
	}
	{ // Test invalid sets
		_, err = ReadCalculixNodeSets(strings.NewReader("*Nset\n1\n"))
		assert.Error(t, err)
		_, err = ReadCalculixNodeSets(strings.NewReader("*Nset, nset=A, generate\n5, 1\n"))
		assert.Error(t, err)
		_, err = ReadCalculixNodeSets(strings.NewReader("*Nset, nset=A\n1, Unknown\n"))
		assert.True(t, errors.Is(err, ErrNodeSetNotFound))
		_, err = ReadCalculixNodeSets(strings.NewReader("*Nset, nset=A\n1, -2\n"))
		assert.Error(t, err)
		_, err = ReadCalculixNodeSets(strings.NewReader("*Nset, nset=A, generate\n0, 4\n"))
		assert.Error(t, err)
	}
	{ // Test that comments inside a node set do not end it
		deck := "*Nset, nset=A\n1, 2\n** more members\n3, 4\n*Step\n5\n"
		ids, err = ReadCalculixNodeSet(strings.NewReader(deck), "A")
		require.NoError(t, err)
		assert.Equal(t, []types.NodeID{1, 2, 3, 4}, ids)

		deck = "*Nset, nset=R, generate\n1, 3\n**\n7, 8\n"
		ids, err = ReadCalculixNodeSet(strings.NewReader(deck), "R")
		require.NoError(t, err)
		assert.Equal(t, []types.NodeID{1, 2, 3, 7, 8}, ids)
	}
	{ // Test that a comment still ends the node section feeding a set
		deck := "*Node, nset=N\n1, 0, 0, 0\n**\n2, 1, 1, 1\n"
		ids, err = ReadCalculixNodeSet(strings.NewReader(deck), "N")
		require.NoError(t, err)
		assert.Equal(t, []types.NodeID{1}, ids)
	}

	tmpFile := createTempInpFile(t, fittingDeck)
	ids, err = ReadCalculixNodeSetFile(tmpFile, "Contact")
	require.NoError(t, err)
	assert.Len(t, ids, 4)
}

package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamledit/cst"
	"go.jacobcolvin.com/yamledit/value"
)

func TestGetNodeByPathBlockMapping(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a:\n  b: 1\n  c: 2\n"))
	require.NoError(t, err)
	defer doc.Close()

	node, err := getNodeByPath(doc.Root(), []string{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, "block_mapping_pair", node.Type())
	assert.Equal(t, "2", string(node.Text())[len(node.Text())-1:])
}

func TestGetNodeByPathSequenceIndex(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a:\n  - x\n  - y\n"))
	require.NoError(t, err)
	defer doc.Close()

	node, err := getNodeByPath(doc.Root(), []string{"a", "1"})
	require.NoError(t, err)
	assert.Equal(t, "block_sequence_item", node.Type())
}

func TestGetNodeByPathMissingKey(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	_, err = getNodeByPath(doc.Root(), []string{"nope"})
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestGetNodeByPathRoot(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	node, err := getNodeByPath(doc.Root(), nil)
	require.NoError(t, err)
	assert.Equal(t, "document", node.Type())
}

func TestGetNodeByNameFlowMapping(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: {b: 1, c: 2}\n"))
	require.NoError(t, err)
	defer doc.Close()

	node, err := getNodeByPath(doc.Root(), []string{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, "flow_pair", node.Type())
}

func TestGetNodeByNameFlowSequence(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: [1, 2, 3]\n"))
	require.NoError(t, err)
	defer doc.Close()

	node, err := getNodeByPath(doc.Root(), []string{"a", "2"})
	require.NoError(t, err)
	assert.Equal(t, "flow_node", node.Type())
}

func TestGetValueByPath(t *testing.T) {
	t.Parallel()

	m := value.NewMap()
	m.Set("a", value.NewSequence([]value.Value{value.NewInt(1), value.NewInt(2)}))
	root := value.NewMapping(m)

	got, err := getValueByPath(root, []string{"a", "1"})
	require.NoError(t, err)
	assert.True(t, value.NewInt(2).Equal(got))
}

func TestGetValueByPathMissing(t *testing.T) {
	t.Parallel()

	m := value.NewMap()
	m.Set("a", value.NewInt(1))
	root := value.NewMapping(m)

	_, err := getValueByPath(root, []string{"b"})
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestConvergeSkipsCommentsAndAnchors(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1 # trailing\n"))
	require.NoError(t, err)
	defer doc.Close()

	pair, ok := findFirstBlockMappingPair(doc.Root())
	require.True(t, ok)

	valueNode, err := cst.Single(pair.Field("value"))
	require.NoError(t, err)

	converged, err := converge(valueNode)
	require.NoError(t, err)
	assert.Equal(t, "1", string(converged.Text()))
}

func findFirstBlockMappingPair(n cst.Node) (cst.Node, bool) {
	if n.Type() == "block_mapping_pair" {
		return n, true
	}

	for _, c := range n.Children() {
		if found, ok := findFirstBlockMappingPair(c); ok {
			return found, true
		}
	}

	return cst.Node{}, false
}

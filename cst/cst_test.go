package cst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamledit/cst"
)

func TestParseAndRootShape(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a:\n  b: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	root := doc.Root()
	assert.Equal(t, "stream", root.Type())
	assert.False(t, root.IsError())
	assert.Equal(t, []byte("a:\n  b: 1\n"), doc.Source())
}

func TestParseReportsErrorNode(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: [1, 2\n"))
	require.NoError(t, err)
	defer doc.Close()

	var hasError func(n cst.Node) bool
	hasError = func(n cst.Node) bool {
		if n.IsError() {
			return true
		}

		for _, c := range n.Children() {
			if hasError(c) {
				return true
			}
		}

		return false
	}

	assert.True(t, hasError(doc.Root()))
}

func TestNodeTextAndRange(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	start, end := doc.Root().Range()
	assert.Equal(t, 0, start)
	assert.Equal(t, len("a: 1\n"), end)
	assert.Equal(t, []byte("a: 1\n"), doc.Root().Text())
}

func findByType(n cst.Node, typ string) (cst.Node, bool) {
	if n.Type() == typ {
		return n, true
	}

	for _, c := range n.Children() {
		if found, ok := findByType(c, typ); ok {
			return found, true
		}
	}

	return cst.Node{}, false
}

func TestBlockMappingPairHasKeyAndValueFields(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	pair, ok := findByType(doc.Root(), "block_mapping_pair")
	require.True(t, ok)

	keys := pair.Field("key")
	require.Len(t, keys, 1)
	assert.Equal(t, "a", string(keys[0].Text()))

	values := pair.Field("value")
	require.Len(t, values, 1)
	assert.Equal(t, "1", string(values[0].Text()))
}

func TestSelectorChainAndUnion(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)
	defer doc.Close()

	mapping, ok := findByType(doc.Root(), "block_mapping")
	require.True(t, ok)

	pairs := cst.Chain(cst.NamedChildren, cst.Type("block_mapping_pair"))(mapping)
	assert.Len(t, pairs, 2)

	keys := cst.Chain(cst.Field("key"))(pairs[0])
	require.Len(t, keys, 1)
	assert.Equal(t, "a", string(keys[0].Text()))
}

func TestSelectorUnionDeduplicates(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)
	defer doc.Close()

	mapping, ok := findByType(doc.Root(), "block_mapping")
	require.True(t, ok)

	pairs := cst.Chain(cst.NamedChildren, cst.Type("block_mapping_pair"))(mapping)
	require.Len(t, pairs, 2)

	overlapping := cst.Union(
		func(cst.Node) []cst.Node { return pairs },
		func(cst.Node) []cst.Node { return pairs[:1] },
	)(mapping)

	require.Len(t, overlapping, 2)
	assert.Equal(t, "a", string(overlapping[0].Field("key")[0].Text()))
	assert.Equal(t, "b", string(overlapping[1].Field("key")[0].Text()))
}

func TestSelectorSingle(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)
	defer doc.Close()

	mapping, ok := findByType(doc.Root(), "block_mapping")
	require.True(t, ok)

	pairs := cst.Chain(cst.NamedChildren, cst.Type("block_mapping_pair"))(mapping)

	_, err = cst.Single(pairs)
	assert.ErrorIs(t, err, cst.ErrNotSingle)

	one, err := cst.Single(pairs[:1])
	require.NoError(t, err)
	assert.Equal(t, "block_mapping_pair", one.Type())
}

func TestPrevSiblingTransitiveCrossesWrapperNodes(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a:\n  b: 1\n  c: 2\n"))
	require.NoError(t, err)
	defer doc.Close()

	outer, ok := findByType(doc.Root(), "block_mapping")
	require.True(t, ok)

	outerPairs := cst.Chain(cst.NamedChildren, cst.Type("block_mapping_pair"))(outer)
	require.Len(t, outerPairs, 1)

	values := cst.Field("value")(outerPairs[0])
	require.Len(t, values, 1)

	inner, ok := findByType(values[0], "block_mapping")
	require.True(t, ok)

	pairs := cst.Chain(cst.NamedChildren, cst.Type("block_mapping_pair"))(inner)
	require.Len(t, pairs, 2)

	prev := cst.PrevSiblingTransitive(pairs[1])
	require.NotEmpty(t, prev)
}

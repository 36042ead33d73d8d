package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamledit/compiler"
	"go.jacobcolvin.com/yamledit/cst"
	"go.jacobcolvin.com/yamledit/edit"
	"go.jacobcolvin.com/yamledit/jsonpatch"
	"go.jacobcolvin.com/yamledit/value"
)

func mustPath(t *testing.T, s string) []string {
	t.Helper()

	p, err := jsonpatch.ParsePointer(s)
	require.NoError(t, err)

	return p.Segments
}

func apply(t *testing.T, src string, edits []edit.Edit) string {
	t.Helper()

	return string(edit.Apply([]byte(src), edits))
}

func TestCompileAddFlowMappingEmptyOmitsLeadingComma(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: {}\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileAdd(doc.Root(), mustPath(t, "/a/k"), value.NewInt(1))
	require.NoError(t, err)

	assert.Equal(t, "a: {k: 1}\n", apply(t, "a: {}\n", edits))
}

func TestCompileAddFlowMappingNonEmptyPrependsComma(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: {x: 1}\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileAdd(doc.Root(), mustPath(t, "/a/y"), value.NewInt(2))
	require.NoError(t, err)

	assert.Equal(t, "a: {x: 1, y: 2}\n", apply(t, "a: {x: 1}\n", edits))
}

func TestCompileRemoveFlowPairAbsorbsFollowingComma(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: {x: 1, y: 2}\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileRemove(doc.Root(), mustPath(t, "/a/x"))
	require.NoError(t, err)

	got := apply(t, "a: {x: 1, y: 2}\n", edits)
	assert.NotContains(t, got, ",,")
	assert.Contains(t, got, "y: 2")
	assert.NotContains(t, got, "x: 1")
}

func TestCompileRemoveFlowPairAbsorbsPrecedingComma(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: {x: 1, y: 2}\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileRemove(doc.Root(), mustPath(t, "/a/y"))
	require.NoError(t, err)

	assert.Equal(t, "a: {x: 1}\n", apply(t, "a: {x: 1, y: 2}\n", edits))
}

func TestCompileAddBlockMappingAppendsAtEnd(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileAdd(doc.Root(), mustPath(t, "/b"), value.NewInt(2))
	require.NoError(t, err)

	assert.Equal(t, "a: 1\nb: 2\n", apply(t, "a: 1\n", edits))
}

func TestCompileAddBlockSequenceMiddleInsertsInPlace(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a:\n  - 1\n  - 3\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileAdd(doc.Root(), mustPath(t, "/a/1"), value.NewInt(2))
	require.NoError(t, err)

	assert.Equal(t, "a:\n  - 1\n  - 2\n  - 3\n", apply(t, "a:\n  - 1\n  - 3\n", edits))
}

func TestCompileReplaceBlockMappingPairPreservesComment(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1 # keep\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileReplace(doc.Root(), mustPath(t, "/a"), value.NewInt(2))
	require.NoError(t, err)

	got := apply(t, "a: 1 # keep\n", edits)
	assert.Contains(t, got, "a: 2")
	assert.Contains(t, got, "# keep")
}

func TestCompileMoveReadsFromFromPointer(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\nb: 2\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileMove(doc.Root(), mustPath(t, "/a"), mustPath(t, "/c"))
	require.NoError(t, err)

	got := apply(t, "a: 1\nb: 2\n", edits)
	assert.Contains(t, got, "c: 1")
	assert.NotContains(t, got, "a: 1")
}

func TestCompileCopyLeavesSourceInPlace(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	edits, err := compiler.CompileCopy(doc.Root(), mustPath(t, "/a"), mustPath(t, "/b"))
	require.NoError(t, err)

	got := apply(t, "a: 1\n", edits)
	assert.Contains(t, got, "a: 1")
	assert.Contains(t, got, "b: 1")
}

func TestCompileTestSuccess(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	err = compiler.CompileTest(doc.Root(), jsonpatch.Operation{
		Op:    jsonpatch.OpTest,
		Path:  jsonpatch.Pointer{Segments: mustPath(t, "/a")},
		Value: value.NewInt(1),
	})
	assert.NoError(t, err)
}

func TestCompileTestFailure(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	err = compiler.CompileTest(doc.Root(), jsonpatch.Operation{
		Op:    jsonpatch.OpTest,
		Path:  jsonpatch.Pointer{Segments: mustPath(t, "/a")},
		Value: value.NewInt(2),
	})
	require.Error(t, err)

	var failure *compiler.TestFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "/a", failure.Operation.Path.String())
}

func TestCompilePatchMultipleOperationsInOrder(t *testing.T) {
	t.Parallel()

	doc, err := cst.Parse([]byte("a: 1\n"))
	require.NoError(t, err)
	defer doc.Close()

	ops := []jsonpatch.Operation{
		{Op: jsonpatch.OpAdd, Path: jsonpatch.Pointer{Segments: mustPath(t, "/b")}, Value: value.NewInt(2)},
		{Op: jsonpatch.OpReplace, Path: jsonpatch.Pointer{Segments: mustPath(t, "/a")}, Value: value.NewInt(9)},
	}

	edits, err := compiler.CompilePatch(doc.Root(), ops)
	require.NoError(t, err)

	assert.Equal(t, "a: 9\nb: 2\n", apply(t, "a: 1\n", edits))
}

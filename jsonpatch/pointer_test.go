package jsonpatch_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/yamledit/jsonpatch"
)

func TestParsePointer(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    []string
		wantErr bool
	}{
		"root": {
			input: "",
			want:  nil,
		},
		"single segment": {
			input: "/a",
			want:  []string{"a"},
		},
		"multiple segments": {
			input: "/a/b/0",
			want:  []string{"a", "b", "0"},
		},
		"escaped tilde": {
			input: "/a~0b",
			want:  []string{"a~b"},
		},
		"escaped slash": {
			input: "/a~1b",
			want:  []string{"a/b"},
		},
		"missing leading slash": {
			input:   "a/b",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := jsonpatch.ParsePointer(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, jsonpatch.ErrPointerSyntax))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Segments)
		})
	}
}

func TestPointerString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		segments []string
		want     string
	}{
		"root":        {segments: nil, want: ""},
		"one segment": {segments: []string{"a"}, want: "/a"},
		"escapes tilde and slash": {
			segments: []string{"a~b", "c/d"},
			want:     "/a~0b/c~1d",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := jsonpatch.Pointer{Segments: tc.segments}
			assert.Equal(t, tc.want, p.String())
		})
	}
}

func TestPointerParent(t *testing.T) {
	t.Parallel()

	p, err := jsonpatch.ParsePointer("/a/b/c")
	require.NoError(t, err)

	parent, last := p.Parent()
	assert.Equal(t, "/a/b", parent.String())
	assert.Equal(t, "c", last)

	root, last := jsonpatch.Root.Parent()
	assert.Equal(t, jsonpatch.Root, root)
	assert.Equal(t, "", last)
}

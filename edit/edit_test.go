package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/yamledit/edit"
)

func TestApply(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		source string
		edits  []edit.Edit
		want   string
	}{
		"no edits": {
			source: "hello",
			edits:  nil,
			want:   "hello",
		},
		"single replace": {
			source: "a: 1\n",
			edits:  []edit.Edit{edit.NewReplace(3, 4, []byte("2"))},
			want:   "a: 2\n",
		},
		"single insert": {
			source: "a: 1\n",
			edits:  []edit.Edit{edit.NewInsert(5, []byte("b: 2\n"))},
			want:   "a: 1\nb: 2\n",
		},
		"single remove": {
			source: "a: 1\nb: 2\n",
			edits:  []edit.Edit{edit.NewRemove(0, 5)},
			want:   "b: 2\n",
		},
		"multiple non-overlapping edits apply independent of order": {
			source: "aXbYc",
			edits: []edit.Edit{
				edit.NewReplace(1, 2, []byte("1")),
				edit.NewReplace(3, 4, []byte("2")),
			},
			want: "a1b2c",
		},
		"insert and replace combine": {
			source: "ab",
			edits: []edit.Edit{
				edit.NewInsert(0, []byte("[")),
				edit.NewReplace(1, 2, []byte("B")),
				edit.NewInsert(2, []byte("]")),
			},
			want: "[aB]",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := edit.Apply([]byte(tc.source), tc.edits)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestApplyDoesNotMutateSource(t *testing.T) {
	t.Parallel()

	source := []byte("hello")
	_ = edit.Apply(source, []edit.Edit{edit.NewReplace(0, 1, []byte("H"))})

	assert.Equal(t, "hello", string(source))
}

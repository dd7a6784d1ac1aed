package diff

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		old, new string
		want     string
	}{
		{
			name: "identical",
			old:  "a\nb\n",
			new:  "a\nb\n",
			want: "  a\n  b\n",
		},
		{
			name: "line changed",
			old:  "a\nb\nc\n",
			new:  "a\nB\nc\n",
			want: "  a\n- b\n+ B\n  c\n",
		},
		{
			name: "line added",
			old:  "a\n",
			new:  "a\nb\n",
			want: "  a\n+ b\n",
		},
		{
			name: "long equal run collapsed",
			old:  "1\n2\n3\n4\n5\n6\n7\n8\nold\n",
			new:  "1\n2\n3\n4\n5\n6\n7\n8\nnew\n",
			want: "  1\n  2\n  3\n  ...\n  6\n  7\n  8\n- old\n+ new\n",
		},
		{
			name: "list markers unchanged",
			old:  "- a\n+ b\n",
			new:  "- a\n+ b\n",
			want: "  - a\n  + b\n",
		},
		{
			name: "trailing newline added",
			old:  "a",
			new:  "a\n",
			want: "- a\n+ a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.old, tt.new, "v1/intro", "v2/intro")
			assert.Equal(t, tt.want, r.Diff)
			assert.Equal(t, tt.old == tt.new, r.Empty())
		})
	}
}

func TestFormat(t *testing.T) {
	r := Compute("a\n", "b\n", Label("v1", "intro"), Label("v2", "intro"))

	plain := r.Format(false)
	assert.True(t, strings.HasPrefix(plain, "--- v1/intro\n+++ v2/intro\n"))
	assert.Contains(t, plain, "- a\n+ b\n")

	coloured := r.Format(true)
	assert.Contains(t, coloured, "\033[31m- a\033[0m")
	assert.Contains(t, coloured, "\033[32m+ b\033[0m")
}

type fakeDiffer struct {
	r   Result
	err error
}

func (f fakeDiffer) Diff(context.Context, string, Options) (Result, error) { return f.r, f.err }

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	_, err := Run(context.Background(), &buf, fakeDiffer{r: Compute("x\n", "y\n", "a", "b")}, "intro", Options{}, false)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "+ y")

	buf.Reset()
	_, err = Run(context.Background(), &buf, fakeDiffer{err: errors.New("boom")}, "intro", Options{}, false)
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpr(t *testing.T) {
	tests := []struct {
		expr    string
		want    Options
		wantErr error
	}{
		{expr: "s/old/new/", want: Options{Old: "old", New: "new"}},
		{expr: "s/old/new/g", want: Options{Old: "old", New: "new", All: true}},
		{expr: "s|a/b|c/d|", want: Options{Old: "a/b", New: "c/d"}},
		{expr: `s/a\/b/c/`, want: Options{Old: "a/b", New: "c"}},
		{expr: `s/a\nb/c/`, want: Options{Old: `a\nb`, New: "c"}},
		{expr: "s/old//", want: Options{Old: "old", New: ""}},
		{expr: "s/Old/new/gi", want: Options{Old: "Old", New: "new", All: true, CaseInsensitive: true}},
		{expr: "s/x", wantErr: ErrInvalidExpr},
		{expr: "s//new/", wantErr: ErrInvalidExpr},
		{expr: "s/a/b/q", wantErr: ErrInvalidExpr},
		{expr: "y/abc/xyz/", wantErr: ErrUnsupportedCommand},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseExpr(tt.expr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

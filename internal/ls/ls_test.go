package ls

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/quire/internal/service/servicetest"
)

func TestRun(t *testing.T) {
	svc := servicetest.New(t)
	ctx := context.Background()

	var buf bytes.Buffer
	r, err := Run(ctx, &buf, svc, Options{})
	require.NoError(t, err)
	assert.Len(t, r.Pages, 5)
	assert.Equal(t, "intro", r.Pages[0].Slug)

	buf.Reset()
	r, err = Run(ctx, &buf, svc, Options{Tab: "api"})
	require.NoError(t, err)
	require.Len(t, r.Pages, 1)
	assert.Equal(t, "api-intro", r.Pages[0].Slug)

	buf.Reset()
	r, err = Run(ctx, &buf, svc, Options{Tree: true})
	require.NoError(t, err)
	assert.Len(t, r.Tree, 2)
	assert.Contains(t, buf.String(), "Getting started/  (getting-started)")

	buf.Reset()
	_, err = Run(ctx, &buf, svc, Options{Long: true, Tab: "app"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "docs/v1/app/app-intro.md")

	buf.Reset()
	r, err = Run(ctx, &buf, svc, Options{Glob: "*intro*"})
	require.NoError(t, err)
	require.Len(t, r.Pages, 3)
	assert.Equal(t, []string{"intro", "api-intro", "app-intro"}, []string{r.Pages[0].Slug, r.Pages[1].Slug, r.Pages[2].Slug})

	_, err = Run(ctx, &buf, svc, Options{Glob: "["})
	assert.Error(t, err)
}

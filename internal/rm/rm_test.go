package rm

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
	var buf bytes.Buffer

	results, err := Run(context.Background(), &buf, svc, []string{"automation", "app-intro", "ghost"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"automation", "iterator"}, results[0].Deleted)
	assert.Equal(t, []string{"app-intro"}, results[1].Deleted)
	assert.Empty(t, results[2].Deleted)
	assert.NotNil(t, results[2].Deleted)

	assert.Equal(t, "Deleted automation and 1 nested items\nDeleted app-intro\nghost: nothing to delete\n", buf.String())

	_, err = svc.Read(context.Background(), "iterator")
	assert.Error(t, err)
}

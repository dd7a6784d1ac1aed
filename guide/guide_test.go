package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	body, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, body, "# quire guide")

	topics, err := List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"config", "mcp", "pages", "tabs", "transfer", "versions"}, topics)

	for _, topic := range topics {
		content, err := Get(topic)
		require.NoError(t, err, topic)
		assert.NotEmpty(t, content, topic)
	}

	_, err = Get("nope")
	assert.Error(t, err)
}

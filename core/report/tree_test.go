package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	out, err := Tree("app", []string{
		"test/eventHandlers/orders/create.test.ts",
		"test/eventHandlers/health.test.ts",
		"tsconfig.test.json",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "app\n"))
	assert.Contains(t, out, "orders")
	assert.Contains(t, out, "create.test.ts")
	assert.Contains(t, out, "health.test.ts")
	assert.Contains(t, out, "tsconfig.test.json")
	assert.Equal(t, 1, strings.Count(out, "eventHandlers"))
}

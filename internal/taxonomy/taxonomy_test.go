package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tax, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, tax.Categories)

	names := tax.CategoryNames()
	assert.Contains(t, names, "Plumbing")
	assert.Contains(t, names, "Electrical")

	for _, c := range tax.Categories {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Points, "category %s has no points", c.Name)
	}
}

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/catalog/internal/types"
)

var sample = []types.Product{
	{ID: 1, Name: "Laptop", Description: "Dell XPS 13", Price: 1299.99},
	{ID: 2, Name: "Smartphone", Description: "Samsung Galaxy S21", Price: 799.99},
	{ID: 3, Name: "Headphones", Description: "Sony WH-1000XM4", Price: 349.99},
}

func TestApply_NoExpressions(t *testing.T) {
	got, err := Apply(sample, "", "")
	require.NoError(t, err)

	list, ok := got.([]any)
	require.True(t, ok)
	assert.Len(t, list, 3)
}

func TestApply_FilterAndQuery(t *testing.T) {
	got, err := Apply(sample, "[?price > `500`]", "[].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Laptop", "Smartphone"}, got)
}

func TestApply_QueryOnly(t *testing.T) {
	got, err := Apply(sample[0], "", "description")
	require.NoError(t, err)
	assert.Equal(t, "Dell XPS 13", got)
}

func TestApply_InvalidExpression(t *testing.T) {
	_, err := Apply(sample, "[?", "")
	assert.ErrorContains(t, err, "failed to apply filter")

	_, err = Apply(sample, "", "[?")
	assert.ErrorContains(t, err, "failed to apply query")
}

func TestApply_ShellQuery(t *testing.T) {
	got, err := Apply(sample, "", "$(wc -c | tr -d ' ')")
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestIsValidJMESPath(t *testing.T) {
	assert.True(t, IsValidJMESPath("[].name"))
	assert.False(t, IsValidJMESPath("[?"))
}

func TestIsShellCommand(t *testing.T) {
	assert.True(t, IsShellCommand("$(jq .)"))
	assert.False(t, IsShellCommand("[].name"))
}

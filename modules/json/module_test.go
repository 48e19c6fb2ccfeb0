package json

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/registry"
)

func TestParse(t *testing.T) {
	reg := registry.NewWithModules(&Module{})

	m, err := reg.Parse(context.Background(), module.JSON, "/p/data.json", []byte(`{"a": [1, 2]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a": [1, 2]}`, m.Render())
	assert.Empty(t, m.Dependencies())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(context.Background(), "/p/bad.json", []byte(`{"a": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/p/bad.json")
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSceneRegistration(t *testing.T) {
	t.Cleanup(Clear)

	RegisterScene("title", func() any { return "title-scene" })
	RegisterScene("demo", func() any { return "demo-scene" })

	f, ok := GetScene("demo")
	require.True(t, ok)
	require.Equal(t, "demo-scene", f())

	_, ok = GetScene("missing")
	require.False(t, ok)

	require.Equal(t, []string{"demo", "title"}, SceneNames())
}

func TestLayerRegistration(t *testing.T) {
	t.Cleanup(Clear)

	RegisterLayer("stats", func(ctx any) any { return ctx }, 300)
	RegisterLayer("world", func(ctx any) any { return ctx }, 100)

	e, ok := GetLayer("stats")
	require.True(t, ok)
	require.Equal(t, 300, e.Priority)
	require.Equal(t, 7, e.Factory(7))
	require.Equal(t, []string{"stats", "world"}, LayerNames())
}

func TestPluginRegistration(t *testing.T) {
	t.Cleanup(Clear)

	RegisterPlugin("box", func() any { return 1 })
	f, ok := GetPlugin("box")
	require.True(t, ok)
	require.Equal(t, 1, f())
	require.Equal(t, []string{"box"}, PluginNames())

	Clear()
	require.Empty(t, PluginNames())
}

package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "sys/fx/fog.yaml", Resolve("sys:fx/fog.yaml"))
	assert.Equal(t, "textures/wood.png", Resolve("textures/../textures/wood.png"))
	assert.Equal(t, "wood.png", Resolve("wood.png"))
}

func TestDetermineAssetType(t *testing.T) {
	assert.Equal(t, AssetTypeMaterial, determineAssetType("a/b.yaml"))
	assert.Equal(t, AssetTypeTexture, determineAssetType("a/b.PNG"))
	assert.Equal(t, AssetTypeTexture, determineAssetType("a/b.webp"))
	assert.Equal(t, AssetTypeShader, determineAssetType("a/b.frag"))
	assert.Equal(t, AssetTypeNone, determineAssetType("README.md"))
}

func TestInitializeIndexesAndReads(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sys/fx/fog.yaml", "name: fog\n")
	writeFile(t, root, "textures/wood.png", "png")
	writeFile(t, root, "notes.txt", "ignored")

	am := NewAssetManager(root)
	require.NoError(t, am.Initialize(false))
	defer am.Shutdown()

	assert.Equal(t, 2, am.Count())
	info, ok := am.Info("sys:fx/fog.yaml")
	require.True(t, ok)
	assert.Equal(t, AssetTypeMaterial, info.Type)
	assert.True(t, info.LastLoaded.IsZero())

	data, err := am.ReadFile("sys:fx/fog.yaml")
	require.NoError(t, err)
	assert.Equal(t, "name: fog\n", string(data))
	info, _ = am.Info("sys/fx/fog.yaml")
	assert.False(t, info.LastLoaded.IsZero())

	_, err = am.ReadFile("sys:fx/missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	// without a watcher nothing is ever queued
	assert.Equal(t, 0, am.Drain(func(Change) { t.Fatal("unexpected change") }))
}

func TestDrainCollapsesDuplicates(t *testing.T) {
	am := NewAssetManager(t.TempDir())
	am.notify(Change{Path: "a.yaml", Type: AssetTypeMaterial})
	am.notify(Change{Path: "a.yaml", Type: AssetTypeMaterial})
	am.notify(Change{Path: "b.png", Type: AssetTypeTexture})

	var got []string
	n := am.Drain(func(c Change) { got = append(got, c.Path) })
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a.yaml", "b.png"}, got)
}

func TestHotReload(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "sys/fx/fog.yaml", "name: fog\n")

	am := NewAssetManager(root)
	require.NoError(t, am.Initialize(true))
	defer am.Shutdown()

	writeFile(t, root, "sys/fx/fog.yaml", "name: fog2\n")

	var changes []Change
	require.Eventually(t, func() bool {
		am.Drain(func(c Change) { changes = append(changes, c) })
		return len(changes) > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "sys/fx/fog.yaml", changes[0].Path)
	assert.Equal(t, AssetTypeMaterial, changes[0].Type)
	assert.False(t, changes[0].Removed)
}

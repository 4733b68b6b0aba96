package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 5, c.Len())

	first, ok := c.At(0)
	require.True(t, ok)
	assert.Equal(t, "Chair", first.Title)
	assert.Equal(t, "models/chair.yaml", first.Asset)

	var titles []string
	for _, m := range c.Models() {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"Chair", "Couch", "Table", "Oven", "Piano"}, titles)
}

func TestFindIsCaseInsensitive(t *testing.T) {
	c := Default()
	m, ok := c.Find("piano")
	require.True(t, ok)
	assert.Equal(t, "Piano", m.Title)

	_, ok = c.Find("lamp")
	assert.False(t, ok)
}

func TestAtOutOfRange(t *testing.T) {
	c := Default()
	_, ok := c.At(-1)
	assert.False(t, ok)
	_, ok = c.At(c.Len())
	assert.False(t, ok)
}

func TestModelsReturnsCopy(t *testing.T) {
	c := Default()
	models := c.Models()
	models[0].Title = "Stool"

	m, _ := c.At(0)
	assert.Equal(t, "Chair", m.Title)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":     "models: []\n",
		"no title":  "models:\n  - asset: models/a.yaml\n",
		"no asset":  "models:\n  - title: Lamp\n",
		"duplicate": "models:\n  - title: Lamp\n    asset: a\n  - title: lamp\n    asset: b\n",
		"not yaml":  "models: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "models:\n  - title: Lamp\n    icon: icons/lamp.png\n    asset: models/lamp.yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	m, _ := c.At(0)
	assert.Equal(t, ModelDescriptor{Title: "Lamp", Icon: "icons/lamp.png", Asset: "models/lamp.yaml"}, m)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

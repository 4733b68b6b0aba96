package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	vars, err := Parse(strings.NewReader(`
# prefs
ARPLACE_CONFIG = "config/dev.json"
export ARPLACE_LOG='logs/dev.txt'
=nokey
novalue
EMPTY=
MIXED="unbalanced'
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ARPLACE_CONFIG": "config/dev.json",
		"ARPLACE_LOG":    "logs/dev.txt",
		"EMPTY":          "",
		"MIXED":          `"unbalanced'`,
	}, vars)
}

func TestLoadDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ARPLACE_TEST_A=file\nARPLACE_TEST_B=file\n"), 0644))
	t.Setenv("ARPLACE_TEST_A", "process")
	t.Setenv("ARPLACE_TEST_B", "")
	require.NoError(t, os.Unsetenv("ARPLACE_TEST_B"))

	require.NoError(t, Load(path))
	assert.Equal(t, "process", os.Getenv("ARPLACE_TEST_A"))
	assert.Equal(t, "file", os.Getenv("ARPLACE_TEST_B"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), ".env")))
}

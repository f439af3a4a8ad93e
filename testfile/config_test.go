package testfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	config, err := ParseConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
	assert.Equal(t, "./data/test.dat", config.Output)
	assert.Equal(t, byte(0x41), config.Fill)
	assert.Equal(t, 1048576, config.ChunkSize)
}

func TestParseConfig_All(t *testing.T) {
	config, err := ParseConfig(`
output = "fixtures/big.bin"
fill = 0
chunk_size = 4096
strict = true
preallocate = true
`)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Output:      "fixtures/big.bin",
		Fill:        0,
		ChunkSize:   4096,
		Strict:      true,
		Preallocate: true,
	}, config)

	opts := config.Options(3)
	assert.Equal(t, int64(3), opts.Multiplier)
	assert.Equal(t, int64(3*4096), opts.Length())
}

func TestParseConfig_Errors(t *testing.T) {
	bad := []string{
		`output = 5`,
		`output = ""`,
		`fill = 256`,
		`fill = -1`,
		`fill = "A"`,
		`chunk_size = 0`,
		`strict = "yes"`,
		`color = "red"`,
		`output = `,
	}
	for _, raw := range bad {
		_, err := ParseConfig(raw)
		assert.Error(t, err, "config %q", raw)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.toml")
	require.NoError(t, os.WriteFile(path, []byte("output = \"out.dat\"\n"), 0660))
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "out.dat", config.Output)
	assert.Equal(t, ChunkSize, config.ChunkSize)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

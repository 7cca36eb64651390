package nuclide

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "%_NUCLIDE_DATA", cfg.Output.ListName)
	assert.Equal(t, "    ", cfg.Output.Indent)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
  "input": {"path": "levels.tsv", "delimiter": "tab", "columns": {"levelEnergy": "E"}},
  "output": {"listName": "NUC"},
  "logging": {"level": "debug"},
  "columns": {"name": ["symbol"]}
}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "levels.tsv", cfg.Input.Path)
	assert.Equal(t, map[string]string{"levelEnergy": "E"}, cfg.Input.Columns)
	assert.Equal(t, "NUC", cfg.Output.ListName)
	assert.Equal(t, "    ", cfg.Output.Indent)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"symbol"}, cfg.Columns.Name)

	opts, err := cfg.InputOptions()
	require.NoError(t, err)
	assert.Equal(t, '\t', opts.Delimiter)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
input:
  path: nudat.xlsx
  sheet: Levels
output:
  path: out/nuclides.dat
  indent: "  "
logging:
  format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "nudat.xlsx", cfg.Input.Path)
	assert.Equal(t, "Levels", cfg.Input.Sheet)
	assert.Equal(t, "out/nuclides.dat", cfg.Output.Path)
	assert.Equal(t, "  ", cfg.Output.Indent)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, DefaultListName, cfg.Output.ListName)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeFile(t, "config.json", "{not json")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeFile(t, "config.json", `{"input": {"path": "file.csv"}, "output": {"listName": "FROM_FILE"}}`)
	t.Setenv("NUCLIDETABLE_INPUT", "env.csv")
	t.Setenv("NUCLIDETABLE_LIST_NAME", "FROM_ENV")
	t.Setenv("NUCLIDETABLE_LOG_LEVEL", "warn")
	t.Setenv("NUCLIDETABLE_ENCODING", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env.csv", cfg.Input.Path)
	assert.Equal(t, "FROM_ENV", cfg.Output.ListName)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Empty(t, cfg.Input.Encoding)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := DefaultConfig()
			cfg.Input.Path = "nudat.csv"
			cfg.Input.Columns = map[string]string{"halflife": "#5"}
			cfg.Columns.DecayMode = []string{"mode"}

			require.NoError(t, SaveConfig(path, cfg))
			_, err := os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Columns = map[string]string{"name": "label"}
	cfg.Columns.Z = []string{"protons"}

	clone := cfg.Clone()
	clone.Input.Columns["name"] = "changed"
	clone.Columns.Z[0] = "changed"

	assert.Equal(t, "label", cfg.Input.Columns["name"])
	assert.Equal(t, "protons", cfg.Columns.Z[0])
}

func TestConfigInputOptionsRejectsBadDelimiter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Delimiter = "||"
	_, err := cfg.InputOptions()
	assert.ErrorIs(t, err, ErrUnsupportedInput)
}

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/metadata-generator/internal/config"
	"github.com/ginjaninja78/metadata-generator/internal/csvparser"
)

func TestDefault(t *testing.T) {
	c := config.Default()

	require.Equal(t, ".", c.OutputDir)
	require.Equal(t, ",", c.Delimiter)
	require.Equal(t, 4, c.Indentation)
	require.Equal(t, csvparser.SkipSilent, c.Policy())
	require.Equal(t, "text", c.LogFormat)
	require.NoError(t, c.Validate())

	level, err := c.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output_dir: out
delimiter: semicolon
indentation: 2
incomplete_row_policy: report
log_level: debug
log_format: json
`), 0o644))

	c, err := config.LoadFile(path)
	require.NoError(t, err)

	require.Equal(t, "out", c.OutputDir)
	require.Equal(t, "semicolon", c.Delimiter)
	require.Equal(t, 2, c.Indentation)
	require.Equal(t, csvparser.Report, c.Policy())
	require.Equal(t, "json", c.LogFormat)

	level, err := c.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("METAGEN_INDENTATION", "8")
	t.Setenv("METAGEN_LOG_LEVEL", "warn")

	v := viper.New()
	config.SetDefaults(v)

	c, err := config.Load(v)
	require.NoError(t, err)
	require.Equal(t, 8, c.Indentation)
	require.Equal(t, "warn", c.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  interface{}
	}{
		{name: "indentation too large", key: config.KeyIndentation, val: 9},
		{name: "negative indentation", key: config.KeyIndentation, val: -1},
		{name: "unknown policy", key: config.KeyIncompleteRowPolicy, val: "drop"},
		{name: "unknown level", key: config.KeyLogLevel, val: "loud"},
		{name: "unknown format", key: config.KeyLogFormat, val: "xml"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := viper.New()
			config.SetDefaults(v)
			v.Set(tc.key, tc.val)

			_, err := config.Load(v)
			require.Error(t, err)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

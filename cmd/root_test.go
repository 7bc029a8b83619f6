package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/metadata-generator/internal/converter"
)

// execute runs the CLI with args and returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	cfgFile = ""
	verbose = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "Version:    "+Version)
}

func TestObjectTemplateThenGenerate(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "object", "template", "-o", dir)
	require.NoError(t, err)
	require.Contains(t, out, "Successfully created template in "+dir+".")

	out, err = execute(t, "object", "generate", "-i", filepath.Join(dir, "template.csv"), "-o", dir)
	require.NoError(t, err)
	require.Contains(t, out, "=== Generated Source")
	require.FileExists(t, filepath.Join(dir, "TextObject__c", "TextObject__c.object-meta.xml"))
	require.FileExists(t, filepath.Join(dir, "AutoNumberObject__c", "AutoNumberObject__c.object-meta.xml"))
}

func TestFieldGenerateValidationError(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fields.csv")
	require.NoError(t, os.WriteFile(input, []byte("fullName,label,type\nbad-name,Bad,Text\n"), 0o644))

	out, err := execute(t, "field", "generate", "-i", input, "-o", dir)
	require.True(t, errors.Is(err, converter.ErrValidation))
	require.Contains(t, out, "Row2Col1")
}

func TestConfigFileIndentation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fields.csv")
	require.NoError(t, os.WriteFile(input, []byte("fullName|label|type|length\nNote__c|Note|Text|20\n"), 0o644))

	cfgPath := filepath.Join(dir, "metagen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("indentation: 2\ndelimiter: pipe\nlog_format: json\n"), 0o644))

	_, err := execute(t, "--config", cfgPath, "field", "generate", "-i", input, "-o", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Note__c.field-meta.xml"))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n  <fullName>Note__c</fullName>")
}

func TestInvalidConfig(t *testing.T) {
	t.Setenv("METAGEN_INDENTATION", "20")

	_, err := execute(t, "version")
	require.Error(t, err)
	require.Contains(t, err.Error(), "indentation")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config file")
}

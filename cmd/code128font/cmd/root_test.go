package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ericlevine/barcodefont"
)

// run executes a fresh command tree and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandStructure(t *testing.T) {
	root := NewRootCommand()
	assert.Equal(t, "code128font", root.Use)

	for _, name := range []string{"encode", "validate", "decode", "capabilities"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"config", "verbose", "log-level", "format"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestEncodeText(t *testing.T) {
	out, _, err := run(t, "encode", "AB12")
	require.NoError(t, err)
	assert.Equal(t, "ÌAB123Î\n", out)
}

func TestEncodeSymbolsAndModules(t *testing.T) {
	out, _, err := run(t, "encode", "--symbols", "--modules", "AB12")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "symbols: 104 33 34 17 18 19 106", lines[1])
	modules := strings.TrimPrefix(lines[2], "modules: ")
	assert.Len(t, modules, 6*11+13)
	assert.True(t, strings.HasPrefix(modules, "11010010000"), "start B pattern")
	assert.True(t, strings.HasSuffix(modules, "1100011101011"), "stop pattern")
}

func TestEncodeJSON(t *testing.T) {
	out, _, err := run(t, "encode", "--format", "json", "--font", "private-use", "12")
	require.NoError(t, err)

	var got encodeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "12", got.Input)
	assert.Equal(t, "CODE_128", got.Symbology)
	assert.Equal(t, "private-use", got.Font)
	assert.Equal(t, string([]rune{0xE000 + 105, 0xE000 + 12, 0xE000 + 14, 0xE000 + 106}), got.Text)
	assert.Nil(t, got.Symbols)
}

func TestEncodeGS1YAML(t *testing.T) {
	out, _, err := run(t, "encode", "--format", "yaml", "--symbology", "gs1-128", "--symbols", "(01)09501101530003(10)AB1")
	require.NoError(t, err)

	var got encodeOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "GS1_128", got.Symbology)
	assert.Equal(t, "(01)09501101530003(10)AB1", got.HumanReadable)
	require.NotEmpty(t, got.Symbols)
	assert.Equal(t, 105, got.Symbols[0])
	assert.Equal(t, 102, got.Symbols[1])
}

func TestEncodeImageNotImplemented(t *testing.T) {
	_, _, err := run(t, "encode", "--image", "ABC")
	assert.ErrorIs(t, err, barcodefont.ErrNotImplemented)
}

func TestEncodeInvalidInput(t *testing.T) {
	_, _, err := run(t, "encode", "Aé")
	var ierr *barcodefont.InputError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 1, ierr.Pos)
}

func TestValidateCommand(t *testing.T) {
	out, _, err := run(t, "validate", "Aé")
	assert.ErrorIs(t, err, errInputInvalid)
	assert.True(t, strings.HasPrefix(out, "invalid: "), out)

	out, _, err = run(t, "validate", "--latin1", "Aé")
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	out, _, err = run(t, "validate", "--format", "json", "--symbology", "isbt-128", "=g123")
	assert.ErrorIs(t, err, errInputInvalid)
	var got validateOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.False(t, got.Valid)
	assert.Equal(t, "ISBT_128", got.Symbology)
	assert.NotEmpty(t, got.Reason)
}

func TestDecodeCommand(t *testing.T) {
	out, _, err := run(t, "decode", "ÌAB123Î")
	require.NoError(t, err)
	assert.Equal(t, "AB12\n", out)

	_, _, err = run(t, "decode", "ÌAB124Î")
	assert.ErrorIs(t, err, barcodefont.ErrChecksum)

	_, _, err = run(t, "decode", "hello")
	assert.ErrorIs(t, err, barcodefont.ErrFormat)
}

func TestEncodeDecodeGS1(t *testing.T) {
	const data = "(01)09501101530003(10)AB1(17)250101"
	out, _, err := run(t, "encode", "--symbology", "gs1-128", data)
	require.NoError(t, err)
	fontText := strings.SplitN(out, "\n", 2)[0]

	out, _, err = run(t, "decode", "--symbology", "gs1-128", "--format", "json", fontText)
	require.NoError(t, err)
	var got decodeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "0109501101530003"+"10AB1\x1d"+"17250101", got.Data)
	assert.Equal(t, data, got.HumanReadable)
}

func TestCapabilitiesCommand(t *testing.T) {
	out, _, err := run(t, "capabilities", "--format", "json")
	require.NoError(t, err)

	var got capabilitiesOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Symbologies, 3)
	for _, c := range got.Symbologies {
		assert.True(t, c.Font, c.Symbology)
		assert.False(t, c.Image, c.Symbology)
	}
	assert.ElementsMatch(t, []string{"idautomation", "private-use"}, got.Fonts)
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "barcodefont.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
encoding:
  font: private-use
output:
  format: json
`), 0o600))

	out, _, err := run(t, "--config", cfgPath, "encode", "12")
	require.NoError(t, err)
	var got encodeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "private-use", got.Font)

	out, _, err = run(t, "--config", cfgPath, "encode", "--font", "idautomation", "--format", "text", "12")
	require.NoError(t, err)
	assert.Equal(t, "Í,.Î\n", out)
}

func TestInvalidConfiguration(t *testing.T) {
	_, _, err := run(t, "encode", "--format", "xml", "A")
	assert.Error(t, err)

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "capabilities")
	assert.Error(t, err)
}

func TestVerboseLogsToStderr(t *testing.T) {
	_, stderr, err := run(t, "-v", "encode", "ABC")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"level":"DEBUG"`)
	assert.Contains(t, stderr, "configuration loaded")
}

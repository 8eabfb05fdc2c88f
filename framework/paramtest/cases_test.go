package paramtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectralworks/testkit/framework/helpers"
)

const casesYAML = `
- label: small detector
  params:
    pixels: 128
    exposure: 0.5
- label: large detector
  params: {pixels: 4096, exposure: 2}
- params:
    zzz: 1
    aaa: 2
`

func TestParseCases(t *testing.T) {
	cases, err := ParseCases([]byte(casesYAML))
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, "small detector", cases[0].Label)
	assert.Equal(t, Params{P("pixels", 128), P("exposure", 0.5)}, cases[0].Params)

	assert.Equal(t, "large detector", cases[1].Label)
	assert.Equal(t, Params{P("pixels", 4096), P("exposure", 2)}, cases[1].Params)

	// document order is preserved, not key order
	assert.Equal(t, "", cases[2].Label)
	assert.Equal(t, Params{P("zzz", 1), P("aaa", 2)}, cases[2].Params)
}

func TestParseCasesEmptyDocument(t *testing.T) {
	cases, err := ParseCases(nil)
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestParseCasesRejectsMalformedInput(t *testing.T) {
	_, err := ParseCases([]byte(`just a string`))
	assert.Error(t, err)

	_, err = ParseCases([]byte(`- label: x` + "\n" + `  bogus: 1`))
	assert.Error(t, err)

	_, err = ParseCases([]byte(`- params: [1, 2]`))
	assert.Error(t, err)
}

func TestLoadCasesFile(t *testing.T) {
	err := helpers.WithTempDir(func(dir string) error {
		path := filepath.Join(dir, "cases.yaml")
		require.NoError(t, os.WriteFile(path, []byte(casesYAML), 0o644))

		cases, err := LoadCasesFile(path)
		require.NoError(t, err)
		assert.Len(t, cases, 3)

		_, err = LoadCasesFile(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
		return nil
	})
	require.NoError(t, err)
}

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/basefigures/internal/core"
	"github.com/JonMunkholm/basefigures/internal/decode"
	"github.com/JonMunkholm/basefigures/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrid(t *testing.T, grid core.RawGrid) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "figures.xlsx")
	var buf bytes.Buffer
	require.NoError(t, decode.WriteGrid(&buf, grid))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_Valid(t *testing.T) {
	path := writeGrid(t, core.ToGrid([]core.BaseFigureRow{
		{Market: schema.MarketRO, MobilePostpaid: 100, MobilePrepaid: 80, Fixed: 60, Consumer: 120, Enterprise: 40},
		{Market: schema.MarketDE, MobilePostpaid: 300, MobilePrepaid: 20, Fixed: 60, Consumer: 80, Enterprise: 40},
	}))

	out, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows valid")
	assert.Contains(t, out, "Base-Mobile Postpaid")
	assert.Contains(t, out, "400")
}

func TestValidate_Invalid(t *testing.T) {
	grid := core.ToGrid(nil)
	grid = append(grid, []core.CellValue{
		core.Text("XX"), core.Number(1), core.Number(1), core.Number(1), core.Number(1), core.Number(1),
	})
	path := writeGrid(t, grid)

	out, err := run(t, "validate", path)
	assert.True(t, errors.Is(err, errInvalid))
	assert.Equal(t, "Errors in spreadsheet:\nRow 2: Column A: 'XX' is not a valid option\n", out)
}

func TestValidate_JSON(t *testing.T) {
	path := writeGrid(t, core.ToGrid(nil))

	out, err := run(t, "validate", "--json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"valid": true`)
	assert.Contains(t, out, `"errors": []`)
}

func TestValidate_WrongExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figures.csv")
	require.NoError(t, os.WriteFile(path, []byte("LM\n"), 0o600))

	out, err := run(t, "validate", path)
	assert.ErrorIs(t, err, core.ErrUnsupportedFile)
	assert.True(t, strings.HasPrefix(out, "Please upload a valid Excel file."))
}

func TestTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")

	out, err := run(t, "template", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	grid, err := decode.NewExcel().Decode(data)
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Equal(t, core.TextRow(schema.Headers()...), grid[0])
}

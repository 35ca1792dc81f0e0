package commands

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex-tools/ledes-forge/pkg/runtime/terminal/export"
)

const timekeeperCSV = `TIMEKEEPER_ID,TIMEKEEPER_NAME,TIMEKEEPER_CLASSIFICATION,RATE
MM001,Matt Murdock,Partner,450
FN001,Foggy Nelson,Partner,400
KP001,Karen Page,Paralegal,125
`

func writeTimekeeperFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timekeepers.csv")
	require.NoError(t, os.WriteFile(path, []byte(timekeeperCSV), 0o644))
	return path
}

func runGenerate(t *testing.T, out io.Writer, args ...string) error {
	t.Helper()
	cmd := NewGenerateCmd(zerolog.Nop(), export.NewReporter(out))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestGenerateCmd_WritesInvoiceFiles(t *testing.T) {
	outDir := t.TempDir()
	var report bytes.Buffer

	err := runGenerate(t, &report,
		"--timekeepers", writeTimekeeperFile(t),
		"--out", outDir,
		"--seed", "7",
		"--pdf=false",
	)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "LEDES98B_"))

	content, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "LEDES1998B[]\n"))

	assert.Contains(t, report.String(), "Generated 1 invoice(s)")
	assert.Contains(t, report.String(), "Seed: 7")
}

func TestGenerateCmd_ZipBatch(t *testing.T) {
	outDir := t.TempDir()
	var report bytes.Buffer

	err := runGenerate(t, &report,
		"--timekeepers", writeTimekeeperFile(t),
		"--out", outDir,
		"--seed", "11",
		"--count", "2",
		"--zip",
		"--pdf=false",
	)
	require.NoError(t, err)

	archives, err := filepath.Glob(filepath.Join(outDir, "invoices_*.zip"))
	require.NoError(t, err)
	require.Len(t, archives, 1)

	data, err := os.ReadFile(archives[0])
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.NotEqual(t, zr.File[0].Name, zr.File[1].Name)

	assert.Contains(t, report.String(), "Generated 2 invoice(s)")
	assert.Contains(t, report.String(), "Archive:")
}

func TestGenerateCmd_RequiresTimekeepers(t *testing.T) {
	err := runGenerate(t, io.Discard, "--seed", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timekeepers")
}

func TestGenerateCmd_RejectsUnknownFormat(t *testing.T) {
	err := runGenerate(t, io.Discard,
		"--timekeepers", writeTimekeeperFile(t),
		"--format", "1998bi",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown LEDES format")
}

func TestCatalogCmd(t *testing.T) {
	t.Run("tasks lists the built-in pairs", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewCatalogCmd(export.NewReporter(&out))
		cmd.SetArgs([]string{"tasks"})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "L100")
		assert.Contains(t, out.String(), "A104")
	})

	t.Run("expenses lists the built-in categories", func(t *testing.T) {
		var out bytes.Buffer
		cmd := NewCatalogCmd(export.NewReporter(&out))
		cmd.SetArgs([]string{"expenses"})
		require.NoError(t, cmd.Execute())
		assert.Contains(t, out.String(), "E101")
		assert.Contains(t, out.String(), "Copying")
	})
}

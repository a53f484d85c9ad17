package importfilter

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	t.Parallel()

	table := loadFixture(t)
	filtered := Apply(table, Criteria{ColIndianPort: OneOf("Mumbai")})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(filtered, &buf))

	reader := csv.NewReader(&buf)
	records, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, records, filtered.NumRows()+1, "header plus one line per row")
	assert.Equal(t, filtered.Schema().Names(), records[0])

	for i, row := range filtered.Rows() {
		for j, v := range row {
			assert.Equal(t, v.String(), records[i+1][j])
		}
	}
}

func TestWriteCSVValueForms(t *testing.T) {
	t.Parallel()

	input := "DATE  INDIAN IMPORTER NAME  QUANTITY  CITY\n" +
		"05/04/2023  ACME Corp  12.5  \n"
	table, err := Load([]byte(input), "values.txt")
	require.NoError(t, err)
	require.Equal(t, 1, table.NumRows())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(table, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Day-first date rendered ISO, number in plain decimal, null as empty.
	assert.Equal(t, []string{"2023-04-05", "ACME Corp", "12.5", ""}, records[1])
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	table := loadFixture(t)
	filtered := Apply(table, Criteria{KeyAWPMachines: MatchesAny("CRANE")})
	require.Equal(t, 1, filtered.NumRows())

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(filtered, &buf))

	workbook, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, workbook.Close())
	}()

	assert.Equal(t, []string{ExportSheetName}, workbook.GetSheetList())

	rows, err := workbook.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, filtered.Schema().Names(), rows[0])
}

func TestExportOptions(t *testing.T) {
	t.Parallel()

	table := loadFixture(t)

	t.Run("gzip-compressed CSV", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := Export(table, &buf, ExportOptions{Format: OutputCSV, Compression: CompressionGZ})
		require.NoError(t, err)

		gz, err := gzip.NewReader(bytes.NewReader(buf.Bytes()))
		require.NoError(t, err)
		decompressed, err := io.ReadAll(gz)
		require.NoError(t, err)
		require.NoError(t, gz.Close())

		var plain bytes.Buffer
		require.NoError(t, WriteCSV(table, &plain))
		assert.Equal(t, plain.Bytes(), decompressed)
	})

	t.Run("bzip2 writing is rejected", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := Export(table, &buf, ExportOptions{Compression: CompressionBZ2})
		assert.Error(t, err)
	})

	t.Run("empty schema is rejected", func(t *testing.T) {
		t.Parallel()

		empty := newTable(newSchema(nil), nil)
		var buf bytes.Buffer
		assert.ErrorIs(t, Export(empty, &buf, ExportOptions{}), ErrEmptyTable)
	})
}

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Period", "Monday"},
		Rows: []map[string]string{
			{"Period": "1", "Monday": "Mathematics, Ani"},
			{"Period": "2"},
		},
	}
}

func TestCSVExporterQuotesAndBlanks(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Period,Monday\n1,\"Mathematics, Ani\"\n2,\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "X-1 2025-W07")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterWritesSheet(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), "X-1 [2025/W07]")
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer book.Close()

	sheet := book.GetSheetName(0)
	assert.Equal(t, "X-1 2025W07", sheet)
	rows, err := book.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Period", "Monday"}, rows[0])
	assert.Equal(t, "Mathematics, Ani", rows[1][1])

	_, err = NewXLSXExporter().Render(Dataset{}, "empty")
	assert.Error(t, err)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "Sheet1", sheetName("[]"))
	assert.Len(t, []rune(sheetName(strings.Repeat("a", 40))), 31)
}

func TestDatasetRecordsFollowHeaderOrder(t *testing.T) {
	records := sampleDataset().Records()
	assert.Equal(t, [][]string{{"1", "Mathematics, Ani"}, {"2", ""}}, records)
	assert.EqualError(t, Dataset{}.Validate("pdf"), "pdf requires at least one header")
}

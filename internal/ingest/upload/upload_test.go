package upload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVForwardFillsBlankIDs(t *testing.T) {
	csv := "id,step,description\n" +
		"T1,1,open page\n" +
		",2,click login\n" +
		",3,submit\n" +
		"T2,1,open settings\n"

	rows, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "T1", rows[0].ID)
	assert.Equal(t, "T1", rows[1].ID)
	assert.Equal(t, "T1", rows[2].ID)
	assert.Equal(t, "T2", rows[3].ID)
	assert.Equal(t, "click login", rows[1].Columns["description"])
}

func TestParseCSVRequiresIDColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("name,value\na,b\n"))
	assert.Error(t, err)
}

func TestParseCSVEmptyReturnsNoRows(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseDispatchesCSVByContentSniff(t *testing.T) {
	data := []byte("id,name\nT1,login test\n")
	rows, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "T1", rows[0].ID)
}

func TestParseRejectsUnsupportedFormat(t *testing.T) {
	// A PNG magic header sniffs to image/png, not text/csv or text/plain.
	data := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

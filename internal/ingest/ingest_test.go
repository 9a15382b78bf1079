package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReaderCSV(t *testing.T) {
	r := strings.NewReader("id,name\n1,Alice\n2,Bob\n")
	rows, header, err := LoadReader(r, ',', FiletypeCSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, header)
	assert.Equal(t, [][]string{{"1", "Alice"}, {"2", "Bob"}}, rows)
}

func TestLoadReaderTSV(t *testing.T) {
	r := strings.NewReader("id\tname\n1\tAlice\n")
	rows, header, err := LoadReader(r, '\t', FiletypeTSV)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, header)
	assert.Equal(t, [][]string{{"1", "Alice"}}, rows)
}

func TestLoadReaderJSON(t *testing.T) {
	r := strings.NewReader(`[{"id":"1","name":"Alice"},{"id":"2","name":"Bob"}]`)
	rows, header, err := LoadReader(r, 0, FiletypeJSON)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"id", "name"}, header)
	require.Len(t, rows, 2)
}

func TestLoadReaderDefaultsToCSVWhenFiletypeUnset(t *testing.T) {
	r := strings.NewReader("a,b\n1,2\n")
	rows, header, err := LoadReader(r, 0, FiletypeAuto)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)
	assert.Equal(t, [][]string{{"1", "2"}}, rows)
}

func TestLoadReaderUnsupportedFiletype(t *testing.T) {
	r := strings.NewReader("anything")
	_, _, err := LoadReader(r, 0, FiletypeXLSX)
	assert.ErrorIs(t, err, ErrUnsupportedFiletype)
}

func TestLoadReaderEmptyInputYieldsNoRows(t *testing.T) {
	r := strings.NewReader("")
	rows, header, err := LoadReader(r, ',', FiletypeCSV)
	require.NoError(t, err)
	assert.Nil(t, rows)
	assert.Nil(t, header)
}

func TestInferFiletypeFromExtension(t *testing.T) {
	assert.Equal(t, FiletypeTSV, inferFiletype("data.tsv"))
	assert.Equal(t, FiletypeJSON, inferFiletype("data.json"))
	assert.Equal(t, FiletypeCSV, inferFiletype("data.csv"))
	assert.Equal(t, FiletypeCSV, inferFiletype("data"))
}

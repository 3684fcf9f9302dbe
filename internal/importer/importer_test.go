package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/linguaflash/linguaflash/internal/importer"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestSheet(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}

	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestImportExcel(t *testing.T) {
	path := writeTestSheet(t, [][]any{
		{"Headword", "Translation", "Definition", "Example", "Type", "Level"},
		{"house", "casa", "a building for living in", "My house is small.", "noun", "A1"},
		{"run", "correr", "", "", "verb", "a1"},
		{"", "", "", "", "", ""},
		{"", "orphan translation", "", "", "", ""},
	})

	words := &mocks.MockWordRepository{}
	words.On("Upsert", mock.Anything, mock.MatchedBy(func(w models.Word) bool {
		return w.Headword == "house" && w.Translation == "casa" && w.Level == "A1"
	})).Return(int64(1), true, nil)
	words.On("Upsert", mock.Anything, mock.MatchedBy(func(w models.Word) bool {
		return w.Headword == "run" && w.WordType == "verb" && w.Level == "A1"
	})).Return(int64(2), false, nil)

	result, err := importer.New(words).Import(context.Background(), importer.DefaultConfig(path))
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "headword is empty")
	words.AssertExpectations(t)
}

func TestImportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	content := "Headword,Translation,Definition,Example,Type,Level\n" +
		"house,casa,a building,,noun,A1\n" +
		"blue,azul,,,adjective,A1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	words := &mocks.MockWordRepository{}
	words.On("Upsert", mock.Anything, mock.Anything).Return(int64(1), true, nil)

	result, err := importer.New(words).Import(context.Background(), importer.DefaultConfig(path))
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Empty(t, result.Errors)
}

func TestImportRejectsBadValues(t *testing.T) {
	path := writeTestSheet(t, [][]any{
		{"Headword", "Translation", "Definition", "Example", "Type", "Level"},
		{"house", "casa", "", "", "gerundive", "A1"},
		{"run", "correr", "", "", "verb", "Z9"},
	})

	words := &mocks.MockWordRepository{}

	result, err := importer.New(words).Import(context.Background(), importer.DefaultConfig(path))
	require.NoError(t, err)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "unknown word type")
	assert.Contains(t, result.Errors[1], "unknown level")
	words.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestImportUnsupportedExtension(t *testing.T) {
	words := &mocks.MockWordRepository{}
	_, err := importer.New(words).Import(context.Background(), importer.DefaultConfig("words.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

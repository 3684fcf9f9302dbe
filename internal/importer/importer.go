package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Config controls how a vocabulary spreadsheet is read. Columns are Excel
// letters; CSV files use the same columns by position.
type Config struct {
	FilePath          string
	SheetName         string
	HeadwordColumn    string
	TranslationColumn string
	DefinitionColumn  string
	ExampleColumn     string
	WordTypeColumn    string
	LevelColumn       string
	// StartRow is 1-based; the default of 2 skips a header row.
	StartRow int
}

// DefaultConfig returns the column layout the bundled word lists use.
func DefaultConfig(path string) Config {
	return Config{
		FilePath:          path,
		SheetName:         "Sheet1",
		HeadwordColumn:    "A",
		TranslationColumn: "B",
		DefinitionColumn:  "C",
		ExampleColumn:     "D",
		WordTypeColumn:    "E",
		LevelColumn:       "F",
		StartRow:          2,
	}
}

// Result summarizes one import run.
type Result struct {
	TotalProcessed int      `json:"total_processed"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Errors         []string `json:"errors,omitempty"`
}

// Importer loads vocabulary words from .xlsx or .csv files.
type Importer struct {
	words repository.WordRepository
}

func New(words repository.WordRepository) *Importer {
	return &Importer{words: words}
}

// Import reads the file named by cfg and upserts every word row. Row-level
// problems are collected in the result instead of aborting the run.
func (im *Importer) Import(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}
	switch strings.ToLower(filepath.Ext(cfg.FilePath)) {
	case ".csv":
		return im.importCSV(ctx, cfg)
	case ".xlsx", ".xlsm":
		return im.importExcel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(cfg.FilePath))
	}
}

func (im *Importer) importExcel(ctx context.Context, cfg Config) (*Result, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}

	result := &Result{}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		im.processRow(ctx, cfg, row, i+1, result)
	}
	im.logResult(ctx, cfg, result)
	return result, nil
}

func (im *Importer) importCSV(ctx context.Context, cfg Config) (*Result, error) {
	file, err := os.Open(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &Result{}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rowNum++
		if rowNum < cfg.StartRow {
			continue
		}
		im.processRow(ctx, cfg, row, rowNum, result)
	}
	im.logResult(ctx, cfg, result)
	return result, nil
}

func (im *Importer) processRow(ctx context.Context, cfg Config, row []string, rowNum int, result *Result) {
	result.TotalProcessed++

	word := models.Word{
		Headword:    cell(row, cfg.HeadwordColumn),
		Translation: cell(row, cfg.TranslationColumn),
		Definition:  cell(row, cfg.DefinitionColumn),
		Example:     cell(row, cfg.ExampleColumn),
		WordType:    strings.ToLower(cell(row, cfg.WordTypeColumn)),
		Level:       strings.ToUpper(cell(row, cfg.LevelColumn)),
	}

	if word.Headword == "" && word.Translation == "" {
		result.Skipped++
		return
	}
	if word.Headword == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: headword is empty", rowNum))
		return
	}
	if word.Translation == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: translation is empty", rowNum))
		return
	}
	if word.WordType != "" && !models.ValidWordType(word.WordType) {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown word type %q", rowNum, word.WordType))
		return
	}
	if word.Level != "" && !models.ValidCEFRLevel(word.Level) {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: unknown level %q", rowNum, word.Level))
		return
	}

	_, created, err := im.words.Upsert(ctx, word)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		return
	}
	if created {
		result.Created++
	} else {
		result.Updated++
	}
}

func (im *Importer) logResult(ctx context.Context, cfg Config, result *Result) {
	logger.FromContext(ctx).Info("word import finished",
		zap.String("file", cfg.FilePath),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))
}

// cell returns the trimmed value at the given Excel column letter, or ""
// when the row is too short.
func cell(row []string, column string) string {
	idx := columnIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func columnIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	idx := 0
	for i := 0; i < len(column); i++ {
		if column[i] < 'A' || column[i] > 'Z' {
			return -1
		}
		idx = idx*26 + int(column[i]-'A'+1)
	}
	return idx - 1
}

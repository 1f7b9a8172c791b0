package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/antigone-study/backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines which columns of a class list hold which student field
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	IDColumn       string // Column with the student id
	NameColumn     string // Column with the Arabic name
	NameFrColumn   string // Column with the French name
	UsernameColumn string // Column with the username
	PasswordColumn string // Column with the password
	SheetName      string // Name of the sheet to import, Excel only
	StartRow       int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		IDColumn:       "A",
		NameColumn:     "B",
		NameFrColumn:   "C",
		UsernameColumn: "D",
		PasswordColumn: "E",
		SheetName:      "Sheet1",
		StartRow:       2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	Students       []models.Student
	TotalProcessed int
	Skipped        int
	Errors         []string
}

// Import reads students from an Excel or CSV class list.
// Rows with missing required cells are skipped and reported in the result.
func Import(config ImportConfig) (*ImportResult, error) {
	var rows [][]string
	var err error

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	columns, err := config.columnIndexes()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Students: []models.Student{},
		Errors:   []string{},
	}

	startRow := config.StartRow
	if startRow < 1 {
		startRow = 1
	}

	for i, row := range rows {
		if i < startRow-1 {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		result.TotalProcessed++

		student, err := parseRow(row, columns)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		result.Students = append(result.Students, student)
	}

	if err := Validate(result.Students); err != nil {
		return result, err
	}

	return result, nil
}

// readExcel returns all rows of a sheet
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV returns all records of a CSV file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// importColumns holds zero-based column indexes
type importColumns struct {
	id, name, nameFr, username, password int
}

func (c ImportConfig) columnIndexes() (importColumns, error) {
	var cols importColumns
	pairs := []struct {
		letter string
		target *int
	}{
		{c.IDColumn, &cols.id},
		{c.NameColumn, &cols.name},
		{c.NameFrColumn, &cols.nameFr},
		{c.UsernameColumn, &cols.username},
		{c.PasswordColumn, &cols.password},
	}
	for _, p := range pairs {
		n, err := excelize.ColumnNameToNumber(p.letter)
		if err != nil {
			return cols, fmt.Errorf("invalid column %q: %w", p.letter, err)
		}
		*p.target = n - 1
	}
	return cols, nil
}

func parseRow(row []string, cols importColumns) (models.Student, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	student := models.Student{
		Name:     cell(cols.name),
		NameFr:   cell(cols.nameFr),
		Username: cell(cols.username),
		Password: cell(cols.password),
	}

	rawID := cell(cols.id)
	if rawID == "" {
		return student, errors.New("missing id")
	}
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return student, fmt.Errorf("invalid id %q", rawID)
	}
	student.ID = id

	switch {
	case student.Username == "":
		return student, errors.New("missing username")
	case student.Password == "":
		return student, errors.New("missing password")
	}
	return student, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

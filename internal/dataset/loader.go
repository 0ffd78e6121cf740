package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Column headers expected in the source file, matched case-insensitively
// after trimming.
const (
	colGender    = "gender"
	colAge       = "age"
	colCondition = "medical condition"
	colProvider  = "insurance provider"
	colBilling   = "billing amount"
	colAdmitted  = "date of admission"
)

var requiredColumns = []string{colGender, colAge, colCondition, colProvider, colBilling, colAdmitted}

// Admission dates appear either as plain dates or with a time component.
var admissionLayouts = []string{"2006-01-02", "2006-01-02 15:04:05"}

// Load reads the dataset at path into a Table. Parquet files are detected
// by extension; anything else is treated as CSV.
//
// A missing file, a missing required column, or an unparseable age or
// admission date aborts the load. A billing amount that fails to parse
// does not: the row is kept with the amount marked unknown.
func Load(path string) (*Table, error) {
	if filepath.Ext(path) == ".parquet" {
		return loadParquet(path)
	}
	return loadCSV(path)
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 64*1024)

	// Skip UTF-8 BOM if present
	if bom, err := br.Peek(3); err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	reader := csv.NewReader(br)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("dataset %s: missing required column %q", path, col)
		}
	}

	var records []Record
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", rowNum+1, err)
		}
		rowNum++

		rec, err := parseRow(row, colIdx)
		if err != nil {
			return nil, fmt.Errorf("dataset row %d: %w", rowNum, err)
		}
		records = append(records, rec)
	}

	return NewTable(records), nil
}

func parseRow(row []string, colIdx map[string]int) (Record, error) {
	field := func(col string) string {
		i := colIdx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	age, err := strconv.Atoi(field(colAge))
	if err != nil {
		return Record{}, fmt.Errorf("parse age %q: %w", field(colAge), err)
	}

	admitted, err := parseAdmission(field(colAdmitted))
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Gender:    field(colGender),
		Age:       age,
		Condition: field(colCondition),
		Provider:  field(colProvider),
		Admitted:  admitted,
		YearMonth: admitted.Format("2006-01"),
	}

	// Lenient by contract: non-numeric billing text marks the amount
	// unknown instead of failing the load. ParseFloat accepts the
	// literals NaN and Inf, which are unusable as amounts and would
	// break mean/JSON downstream, so they stay unknown too.
	if v, err := strconv.ParseFloat(field(colBilling), 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		rec.Billing = v
		rec.BillingKnown = true
	}

	return rec, nil
}

func parseAdmission(s string) (time.Time, error) {
	for _, layout := range admissionLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse admission date %q: unsupported format", s)
}

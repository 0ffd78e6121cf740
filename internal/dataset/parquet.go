package dataset

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/parquet-go/parquet-go"
)

// parquetRow is the on-disk schema for Parquet datasets. The admission date
// is stored as a string in the same layouts the CSV path accepts, and the
// billing amount is optional so unknown values survive a CSV → Parquet
// conversion.
type parquetRow struct {
	Gender    string   `parquet:"gender"`
	Age       int32    `parquet:"age"`
	Condition string   `parquet:"medical_condition"`
	Provider  string   `parquet:"insurance_provider"`
	Billing   *float64 `parquet:"billing_amount,optional"`
	Admitted  string   `parquet:"date_of_admission"`
}

func loadParquet(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	reader := parquet.NewGenericReader[parquetRow](f)
	defer reader.Close()

	records := make([]Record, 0, int(reader.NumRows()))
	buf := make([]parquetRow, 1024)
	rowNum := int64(0)
	for {
		n, err := reader.Read(buf)
		for _, row := range buf[:n] {
			rowNum++
			rec, convErr := row.toRecord()
			if convErr != nil {
				return nil, fmt.Errorf("dataset row %d: %w", rowNum, convErr)
			}
			records = append(records, rec)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
	}

	return NewTable(records), nil
}

func (p parquetRow) toRecord() (Record, error) {
	admitted, err := parseAdmission(p.Admitted)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		Gender:    p.Gender,
		Age:       int(p.Age),
		Condition: p.Condition,
		Provider:  p.Provider,
		Admitted:  admitted,
		YearMonth: admitted.Format("2006-01"),
	}
	// Parquet floats can carry NaN/Inf; treat them as unknown like the
	// CSV path does.
	if p.Billing != nil && !math.IsNaN(*p.Billing) && !math.IsInf(*p.Billing, 0) {
		rec.Billing = *p.Billing
		rec.BillingKnown = true
	}
	return rec, nil
}

// asParquetRow converts a Record back into the Parquet schema. Used by
// tests to produce fixture files.
func asParquetRow(r Record) parquetRow {
	row := parquetRow{
		Gender:    r.Gender,
		Age:       int32(r.Age),
		Condition: r.Condition,
		Provider:  r.Provider,
		Admitted:  r.Admitted.Format("2006-01-02"),
	}
	if r.BillingKnown {
		b := r.Billing
		row.Billing = &b
	}
	return row
}

package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/parquet-go/parquet-go"
)

const sampleHeader = "Name,Age,Gender,Medical Condition,Insurance Provider,Billing Amount,Date of Admission\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, sampleHeader+
		"Alice Smith,34,Female,Diabetes,Aetna,1250.50,2023-04-12\n"+
		"Bob Jones,61,Male,Asthma,Cigna,980.00,2023-05-03\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", table.Len())
	}

	r := table.Records()[0]
	if r.Gender != "Female" || r.Age != 34 || r.Condition != "Diabetes" || r.Provider != "Aetna" {
		t.Errorf("unexpected first record: %+v", r)
	}
	if !r.BillingKnown || r.Billing != 1250.50 {
		t.Errorf("expected billing 1250.50, got %+v", r)
	}
	if r.YearMonth != "2023-04" {
		t.Errorf("expected year-month 2023-04, got %q", r.YearMonth)
	}
}

func TestLoadCSVLenientBilling(t *testing.T) {
	path := writeCSV(t, sampleHeader+
		"Alice Smith,34,Female,Diabetes,Aetna,not-a-number,2023-04-12\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load should tolerate a bad billing amount: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("row with bad billing must be retained, got %d rows", table.Len())
	}
	if table.Records()[0].BillingKnown {
		t.Error("billing should be marked unknown")
	}
}

func TestLoadCSVNonFiniteBilling(t *testing.T) {
	// ParseFloat accepts these literals, but they are not usable amounts:
	// a NaN that slipped through would poison the mean and make the
	// summary JSON unencodable.
	for _, cell := range []string{"NaN", "nan", "Inf", "+Inf", "-Inf"} {
		t.Run(cell, func(t *testing.T) {
			path := writeCSV(t, sampleHeader+
				"Alice,34,Female,Diabetes,Aetna,"+cell+",2023-04-12\n")
			table, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if table.Records()[0].BillingKnown {
				t.Errorf("billing %q must be marked unknown", cell)
			}
		})
	}
}

func TestLoadCSVFatalErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
			t.Fatal("expected error for missing file")
		}
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, "Age,Gender\n34,Female\n")
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for missing columns")
		}
	})

	t.Run("bad age", func(t *testing.T) {
		path := writeCSV(t, sampleHeader+"Alice,old,Female,Diabetes,Aetna,10.0,2023-04-12\n")
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for unparseable age")
		}
	})

	t.Run("bad admission date", func(t *testing.T) {
		path := writeCSV(t, sampleHeader+"Alice,34,Female,Diabetes,Aetna,10.0,April 12\n")
		if _, err := Load(path); err == nil {
			t.Fatal("expected error for unparseable date")
		}
	})
}

func TestLoadCSVByteOrderMark(t *testing.T) {
	path := writeCSV(t, "\xEF\xBB\xBF"+sampleHeader+
		"Alice,34,Female,Diabetes,Aetna,10.0,2023-04-12\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed on BOM-prefixed file: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", table.Len())
	}
}

func TestLoadHeaderCaseInsensitive(t *testing.T) {
	path := writeCSV(t, "gender,AGE,medical condition,Insurance Provider,billing amount,Date Of Admission\n"+
		"Female,34,Diabetes,Aetna,10.0,2023-04-12\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := table.Records()[0].Condition; got != "Diabetes" {
		t.Errorf("expected condition Diabetes, got %q", got)
	}
}

func TestLoadDeterministic(t *testing.T) {
	path := writeCSV(t, sampleHeader+
		"Alice,34,Female,Diabetes,Aetna,1250.50,2023-04-12\n"+
		"Bob,61,Male,Asthma,Cigna,banana,2023-05-03\n")

	first, err := Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !reflect.DeepEqual(first.Records(), second.Records()) {
		t.Error("loading the same file twice must yield identical tables")
	}
}

func TestDistinctValues(t *testing.T) {
	path := writeCSV(t, sampleHeader+
		"A,34,Female,Diabetes,Aetna,1.0,2023-04-12\n"+
		"B,61,Male,Asthma,Cigna,2.0,2023-05-03\n"+
		"C,50,Female,Diabetes,Aetna,3.0,2023-06-01\n")

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := table.Genders(); !reflect.DeepEqual(got, []string{"Female", "Male"}) {
		t.Errorf("genders in first-seen order, got %v", got)
	}
	if got := table.Conditions(); !reflect.DeepEqual(got, []string{"Diabetes", "Asthma"}) {
		t.Errorf("conditions in first-seen order, got %v", got)
	}
	if got := table.Providers(); !reflect.DeepEqual(got, []string{"Aetna", "Cigna"}) {
		t.Errorf("providers in first-seen order, got %v", got)
	}
}

func TestLoadParquet(t *testing.T) {
	csvPath := writeCSV(t, sampleHeader+
		"Alice,34,Female,Diabetes,Aetna,1250.50,2023-04-12\n"+
		"Bob,61,Male,Asthma,Cigna,oops,2023-05-03\n")
	fromCSV, err := Load(csvPath)
	if err != nil {
		t.Fatalf("csv load: %v", err)
	}

	// Convert the same rows to Parquet and load through the other path.
	rows := make([]parquetRow, 0, fromCSV.Len())
	for _, r := range fromCSV.Records() {
		rows = append(rows, asParquetRow(r))
	}
	pqPath := filepath.Join(t.TempDir(), "records.parquet")
	f, err := os.Create(pqPath)
	if err != nil {
		t.Fatalf("create parquet: %v", err)
	}
	writer := parquet.NewGenericWriter[parquetRow](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close parquet writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close parquet file: %v", err)
	}

	fromParquet, err := Load(pqPath)
	if err != nil {
		t.Fatalf("parquet load: %v", err)
	}
	if !reflect.DeepEqual(fromCSV.Records(), fromParquet.Records()) {
		t.Errorf("parquet and csv loads disagree:\ncsv:     %+v\nparquet: %+v",
			fromCSV.Records(), fromParquet.Records())
	}
}

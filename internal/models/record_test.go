package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestRecordUnmarshalPreservesNumericKeyOrder(t *testing.T) {
	t.Parallel()

	var record Record
	payload := `{"zeta": 1, "name": "Q1", "alpha": 2.5, "label": "skip", "flag": true, "missing": null, "mid": -3}`
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}

	if record.Name != "Q1" {
		t.Fatalf("expected name Q1, got %q", record.Name)
	}
	want := []string{"zeta", "alpha", "mid"}
	if got := record.NumericKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected numeric keys %v, got %v", want, got)
	}
	if value, ok := record.Value("mid"); !ok || value != -3 {
		t.Fatalf("expected mid=-3, got %v (ok=%v)", value, ok)
	}
	if _, ok := record.Value("label"); ok {
		t.Fatal("did not expect string field to be kept as a numeric field")
	}
}

func TestRecordUnmarshalNumericName(t *testing.T) {
	t.Parallel()

	var record Record
	if err := json.Unmarshal([]byte(`{"name": 2024, "volume": 5}`), &record); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if record.Name != "2024" {
		t.Fatalf("expected numeric name to be stringified, got %q", record.Name)
	}
	if len(record.Fields) != 1 {
		t.Fatalf("expected the name key to be excluded from fields, got %#v", record.Fields)
	}
}

func TestRecordUnmarshalRejectsNonObject(t *testing.T) {
	t.Parallel()

	var record Record
	if err := json.Unmarshal([]byte(`[1, 2]`), &record); err == nil {
		t.Fatal("expected error for array record")
	}
}

func TestParseRecordsReportsMalformedJSON(t *testing.T) {
	t.Parallel()

	if _, err := ParseRecords([]byte(`{bad json`)); err == nil {
		t.Fatal("expected malformed JSON error")
	}

	records, err := ParseRecords([]byte(`[]`))
	if err != nil {
		t.Fatalf("parse empty records: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("expected empty non-nil records, got %#v", records)
	}
}

func TestRecordMarshalRoundTripKeepsOrder(t *testing.T) {
	t.Parallel()

	record := NewRecord("Q1", Field{Key: "value", Value: 2}, Field{Key: "volume", Value: 1})
	encoded, err := json.Marshal(record)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	if string(encoded) != `{"name":"Q1","value":2,"volume":1}` {
		t.Fatalf("unexpected encoding %s", encoded)
	}
}

func TestChartOptionsWithDefaults(t *testing.T) {
	t.Parallel()

	options := ChartOptions{}.WithDefaults(ChartPie)
	if len(options.Data) != 6 {
		t.Fatalf("expected pie sample data with 6 records, got %d", len(options.Data))
	}
	if options.SourceText != DefaultSourceText {
		t.Fatalf("expected default source text, got %q", options.SourceText)
	}
	if !options.LogoVisible() || !options.LabelsVisible() || !options.LegendVisible() {
		t.Fatal("expected logo, labels and legend to default to visible")
	}
	if options.ShowInnerRadius {
		t.Fatal("expected inner radius to default to false")
	}
	if options.Height != DefaultChartHeight || options.Width != DefaultChartWidth {
		t.Fatalf("unexpected default size %q x %d", options.Width, options.Height)
	}

	explicitEmpty := ChartOptions{Data: []Record{}}.WithDefaults(ChartBar)
	if len(explicitEmpty.Data) != 0 {
		t.Fatalf("expected explicit empty data to be kept, got %d records", len(explicitEmpty.Data))
	}
}

func TestChartOptionsDecodeNumericWidth(t *testing.T) {
	t.Parallel()

	var options ChartOptions
	if err := json.Unmarshal([]byte(`{"width": 640, "showLogo": false}`), &options); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if options.Width != "640px" {
		t.Fatalf("expected width 640px, got %q", options.Width)
	}
	if options.LogoVisible() {
		t.Fatal("expected logo to be hidden")
	}
}

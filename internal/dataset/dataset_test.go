package dataset

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/san-kum/roomflow/internal/logging"
)

const sampleCSV = `Time,AC State,Window State,AC Temperature (°C),room temperature,Airflow Speed (m/s),Humidity
00:00,1,0,24,28,0.5,40
00:05,0,1,,27,1.2,41
,1,1,22,26,0.1,42
00:15
00:20,1
`

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// empty Time and the state-less "00:15" line are dropped
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Time != "00:00" || first.ACState != "1" || first.WindowState != "0" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.ACTemperature != "24" || first.RoomTemperature != "28" || first.AirflowSpeed != "0.5" {
		t.Errorf("unexpected first row values: %+v", first)
	}

	second := rows[1]
	if !second.Has(FieldACTemperature) {
		t.Error("empty cell should still count as defined")
	}
	if second.Temperature() != "27" {
		t.Errorf("expected room temperature fallback 27, got %q", second.Temperature())
	}

	short := rows[2]
	if short.Has(FieldWindowState) {
		t.Error("short line should leave window state undefined")
	}
	if !short.Has(FieldACState) || short.ACState != "1" {
		t.Errorf("expected AC state 1, got %+v", short)
	}
}

func TestParse_BOMAndCRLF(t *testing.T) {
	in := "\ufeffTime,Window State\r\n01:00,1\r\n"
	rows, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Time != "01:00" || !rows[0].WindowOpen() {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   io.Reader
		want error
	}{
		{"empty", strings.NewReader(""), ErrEmpty},
		{"unreadable header", iotest.ErrReader(errors.New("boom")), ErrParse},
		{"read error after header", io.MultiReader(strings.NewReader("Time,AC State\n00:00,1\n"), iotest.ErrReader(errors.New("boom"))), ErrFetch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParse_StrayQuotes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		times []string
	}{
		{
			"bare quote mid row",
			"Time,AC State,Window State,room temperature\n08:00,1,0,24\n08:05,1,1,23 \"approx\"\n08:10,0,1,22\n",
			[]string{"08:00", "08:05", "08:10"},
		},
		{
			"quote inside value",
			"Time,AC State\n00:00,o\"n\n00:05,1\n",
			[]string{"00:00", "00:05"},
		},
		{
			"unterminated quote at end",
			"Time,AC State\n00:00,1\n00:05,\"1\n",
			[]string{"00:00", "00:05"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Parse(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if len(rows) != len(tt.times) {
				t.Fatalf("expected %d rows, got %d: %+v", len(tt.times), len(rows), rows)
			}
			for i, want := range tt.times {
				if rows[i].Time != want {
					t.Errorf("row %d: expected time %q, got %q", i, want, rows[i].Time)
				}
			}
		})
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse(strings.NewReader("Time,AC State\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestRowValid(t *testing.T) {
	tests := []struct {
		name  string
		row   Row
		valid bool
	}{
		{"time and ac", NewRow(map[Field]string{FieldTime: "1", FieldACState: "0"}), true},
		{"time and window", NewRow(map[Field]string{FieldTime: "1", FieldWindowState: ""}), true},
		{"no time", NewRow(map[Field]string{FieldACState: "1"}), false},
		{"no states", NewRow(map[Field]string{FieldTime: "1", FieldACTemperature: "20"}), false},
		{"zero", Row{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"  2", 2},
		{"-0.25", -0.25},
		{".5", 0.5},
		{"3.", 3},
		{"1e2", 100},
		{"1e", 1},
		{"12.5m/s", 12.5},
		{"abc", 0},
		{"", 0},
		{"-", 0},
		{".", 0},
		{"NaN", 0},
		{"Infinity", 0},
		{"1e999", 0},
	}
	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSequence(t *testing.T) {
	if _, err := NewSequence(nil); !errors.Is(err, ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}

	rows := []Row{
		NewRow(map[Field]string{FieldTime: "a", FieldACState: "1"}),
		NewRow(map[Field]string{FieldTime: "b", FieldACState: "0"}),
		NewRow(map[Field]string{FieldTime: "c", FieldACState: "1"}),
	}
	seq, err := NewSequence(rows)
	if err != nil {
		t.Fatal(err)
	}
	rows[0].Time = "mutated"
	if seq.At(0).Time != "a" {
		t.Error("sequence must not alias the caller's slice")
	}

	tests := []struct {
		i    int
		want string
	}{
		{0, "a"}, {2, "c"}, {3, "a"}, {7, "b"}, {-1, "c"},
	}
	for _, tt := range tests {
		if got := seq.At(tt.i).Time; got != tt.want {
			t.Errorf("At(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
	if seq.Next(2) != 0 {
		t.Errorf("expected Next(2) to wrap to 0, got %d", seq.Next(2))
	}
}

func TestSeries(t *testing.T) {
	rows, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	seq, _ := NewSequence(rows)

	airflow := seq.Series(FieldAirflowSpeed)
	want := []float64{0.5, 1.2, 0}
	for i := range want {
		if airflow[i] != want[i] {
			t.Errorf("airflow[%d] = %v, want %v", i, airflow[i], want[i])
		}
	}

	temps := seq.TemperatureSeries()
	if temps[0] != 24 || temps[1] != 27 || temps[2] != 0 {
		t.Errorf("unexpected temperature series %v", temps)
	}
}

func TestFallback(t *testing.T) {
	seq := Fallback()
	if seq.Len() != 1 {
		t.Fatalf("expected 1 row, got %d", seq.Len())
	}
	r := seq.At(0)
	if r.Time != "00:00" || !r.ACOn() || r.WindowOpen() || r.ACTemperature != "24" || r.RoomTemperature != "28" {
		t.Errorf("unexpected fallback row: %+v", r)
	}
	if r.Has(FieldAirflowSpeed) {
		t.Error("fallback row has no airflow speed")
	}
}

func TestLoad_NeverEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.csv":
			io.WriteString(w, sampleCSV)
		case "/filtered.csv":
			io.WriteString(w, "Time,AC State\n,1\n,0\n")
		case "/blank.csv":
			io.WriteString(w, "\n  \n")
		case "/quoted.csv":
			io.WriteString(w, "Time,AC State,Window State\n08:00,1,0\n08:05,1,1 \"approx\"\n08:10,0,1\n")
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		ref      string
		wantLen  int
		fallback bool
	}{
		{"success", srv.URL + "/ok.csv", 3, false},
		{"zero valid rows", srv.URL + "/filtered.csv", 1, true},
		{"blank content", srv.URL + "/blank.csv", 1, true},
		{"stray quote keeps rows", srv.URL + "/quoted.csv", 3, false},
		{"http failure", srv.URL + "/missing.csv", 1, true},
		{"network failure", "http://127.0.0.1:1/none.csv", 1, true},
		{"missing file", filepath.Join(t.TempDir(), "none.csv"), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := Load(context.Background(), tt.ref, logging.Discard())
			if seq == nil || seq.Len() == 0 {
				t.Fatal("Load returned an empty sequence")
			}
			if seq.Len() != tt.wantLen {
				t.Errorf("expected %d rows, got %d", tt.wantLen, seq.Len())
			}
			if tt.fallback && seq.At(0) != Fallback().At(0) {
				t.Errorf("expected fallback row, got %+v", seq.At(0))
			}
			if !tt.fallback && seq.At(0) == Fallback().At(0) {
				t.Error("loaded rows were replaced by the fallback row")
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	seq := Load(context.Background(), path, logging.Discard())
	if seq.Len() != 3 {
		t.Errorf("expected 3 rows, got %d", seq.Len())
	}
}

package resource

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("Time\n00:00\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()

	if s.Size != 11 {
		t.Errorf("expected size 11, got %d", s.Size)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.glb"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist in chain, got %v", err)
	}
}

func TestOpenEmptyRef(t *testing.T) {
	if _, err := Open(context.Background(), ""); !errors.Is(err, ErrEmptyRef) {
		t.Errorf("expected ErrEmptyRef, got %v", err)
	}
}

func TestOpenHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "payload")
	}))
	defer srv.Close()

	data, err := ReadAll(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("expected payload, got %q", data)
	}

	_, err = Open(context.Background(), srv.URL+"/missing")
	if !errors.Is(err, ErrStatus) {
		t.Fatalf("expected ErrStatus, got %v", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 StatusError, got %v", err)
	}
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"http://host/a.glb", true},
		{"https://host/a.glb", true},
		{"room.glb", false},
		{"/abs/room.glb", false},
		{"ftp://host/a", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.ref); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestProgressReader(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 400)
	var reports []int
	pr := NewProgressReader(bytes.NewReader(payload), int64(len(payload)), func(p int) {
		reports = append(reports, p)
	})

	buf := make([]byte, 100)
	for {
		_, err := pr.Read(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
	}

	want := []int{25, 50, 75, 100}
	if len(reports) != len(want) {
		t.Fatalf("expected reports %v, got %v", want, reports)
	}
	for i := range want {
		if reports[i] != want[i] {
			t.Errorf("report %d: expected %d, got %d", i, want[i], reports[i])
		}
	}
}

func TestProgressReader_UnknownTotal(t *testing.T) {
	var reports []int
	pr := NewProgressReader(bytes.NewReader([]byte("abc")), -1, func(p int) {
		reports = append(reports, p)
	})
	if _, err := io.ReadAll(pr); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0] != 100 {
		t.Errorf("expected single 100 report, got %v", reports)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		loaded, total int64
		want          int
	}{
		{0, 100, 0},
		{1, 3, 33},
		{2, 3, 67},
		{100, 100, 100},
		{150, 100, 100},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := Percent(tt.loaded, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.loaded, tt.total, got, tt.want)
		}
	}
}

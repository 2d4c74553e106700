package adif

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestRecord_String(t *testing.T) {
	var r Record
	r.Set("call", "K1ABC")
	r.Set("BAND", "40m")
	r.Set("FREQ", "7.2")
	r.Set("MODE", "")
	r.Set("COMMENT", "K-0001 Acadia")

	want := "<CALL:5>K1ABC <BAND:3>40m <FREQ:3>7.2 <COMMENT:13>K-0001 Acadia <EOR>"
	if got := r.String(); got != want {
		t.Errorf("String() = %q\nwant       %q", got, want)
	}
	if v, ok := r.Get("call"); !ok || v != "K1ABC" {
		t.Errorf("Get(call) = %q, %v", v, ok)
	}
	if _, ok := r.Get("GRIDSQUARE"); ok {
		t.Error("Get on missing field reported ok")
	}
}

func TestRecord_Empty(t *testing.T) {
	if got := (Record{}).String(); got != "<EOR>" {
		t.Errorf("String() = %q", got)
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Record{{Name: "CALL", Value: "W1AW"}}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "<CALL:4>W1AW <EOR>\n" {
		t.Errorf("Encode wrote %q", buf.String())
	}
}

func TestFormatMHz(t *testing.T) {
	tests := map[float64]string{7.2: "7.2", 14.074: "14.074", 50: "50"}
	for in, want := range tests {
		if got := FormatMHz(in); got != want {
			t.Errorf("FormatMHz(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWriter_HeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.adi")
	w := NewWriter(path)

	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	if err := w.Append(Record{{Name: "CALL", Value: "K1ABC"}}); err != nil {
		t.Fatal(err)
	}
	if err := w.Append(Record{{Name: "CALL", Value: "W1AW"}}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Header + "<CALL:5>K1ABC <EOR>\n<CALL:4>W1AW <EOR>\n"
	if string(data) != want {
		t.Errorf("file = %q\nwant  %q", data, want)
	}
}

func TestWriter_ExistingFileKeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.adi")
	if err := os.WriteFile(path, []byte("old header <eoh>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewWriter(path).Append(Record{{Name: "CALL", Value: "N0CALL"}}); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Count(string(data), "<eoh>") != 1 || !strings.HasPrefix(string(data), "old header") {
		t.Errorf("file = %q", data)
	}
}

func TestWriter_Errors(t *testing.T) {
	if err := NewWriter("").Append(Record{}); !errors.Is(err, ErrNoPath) {
		t.Errorf("empty path err = %v", err)
	}
	bad := filepath.Join(t.TempDir(), "missing", "log.adi")
	if err := NewWriter(bad).Append(Record{}); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWriter_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.adi")
	w := NewWriter(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.Append(Record{{Name: "CALL", Value: "K1ABC"}})
		}()
	}
	wg.Wait()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 21 {
		t.Errorf("lines = %d, want 21", len(lines))
	}
}

// Package adif writes contact records in the ADIF text (ADI) format.
package adif

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Header opens every log file created by Writer.
const Header = "potarig log file <eoh>\n"

const eor = "<EOR>"

var ErrNoPath = errors.New("adif: no log file configured")

// Field is one ADIF data specifier.
type Field struct {
	Name  string
	Value string
}

// Record is an ordered list of fields. Fields with empty values are skipped on output.
type Record []Field

// Set appends a field, upper-casing its name.
func (r *Record) Set(name, value string) {
	*r = append(*r, Field{Name: strings.ToUpper(name), Value: value})
}

// Get returns the value of the first field called name.
func (r Record) Get(name string) (string, bool) {
	name = strings.ToUpper(name)
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// String renders the record on a single line, terminated by <EOR>.
func (r Record) String() string {
	var b strings.Builder
	for _, f := range r {
		if f.Value == "" {
			continue
		}
		b.WriteString("<")
		b.WriteString(f.Name)
		b.WriteString(":")
		b.WriteString(strconv.Itoa(len(f.Value)))
		b.WriteString(">")
		b.WriteString(f.Value)
		b.WriteString(" ")
	}
	b.WriteString(eor)
	return b.String()
}

// Encode writes r followed by a newline.
func Encode(w io.Writer, r Record) error {
	_, err := io.WriteString(w, r.String()+"\n")
	return err
}

// FormatMHz renders a frequency in MHz without trailing zeros.
func FormatMHz(mhz float64) string {
	return strconv.FormatFloat(mhz, 'f', -1, 64)
}

// Writer appends records to a log file, creating it with Header on first use.
type Writer struct {
	path string
	mu   sync.Mutex
}

func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

func (w *Writer) Path() string { return w.path }

// Init creates the log file with its header if it does not exist yet.
func (w *Writer) Init() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	f, err := w.open()
	if err != nil {
		return err
	}
	return f.Close()
}

// Append writes one record to the end of the log file.
func (w *Writer) Append(r Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.open()
	if err != nil {
		return err
	}
	if err := Encode(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("adif: write %s: %w", w.path, err)
	}
	return f.Close()
}

// open opens the file for appending and writes the header when it was just created.
// Caller holds mu.
func (w *Writer) open() (*os.File, error) {
	if w.path == "" {
		return nil, ErrNoPath
	}
	_, statErr := os.Stat(w.path)
	created := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("adif: open %s: %w", w.path, err)
	}
	if created {
		if _, err := io.WriteString(f, Header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("adif: write header %s: %w", w.path, err)
		}
	}
	return f, nil
}

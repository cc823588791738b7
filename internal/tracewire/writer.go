package tracewire

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/francoispqt/gojay"

	"github.com/observe-l/eggdrop/locate"
)

// Writer emits one JSON object per line. It implements locate.Observer; the
// first write error is kept and returned by Err and Flush, later records are
// dropped.
type Writer struct {
	mu  sync.Mutex
	w   *bufio.Writer
	n   int
	err error
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: bufio.NewWriter(w)} }

func (w *Writer) OnProbe(p locate.Probe) {
	rec := FromProbe(p)
	_ = w.Write(&rec)
}

// WriteOutcome appends the final outcome of a stochastic search.
func (w *Writer) WriteOutcome(o locate.Outcome) error {
	rec := FromOutcome(o)
	return w.Write(&rec)
}

// Write encodes rec as a single line.
func (w *Writer) Write(rec *Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	b, err := gojay.MarshalJSONObject(rec)
	if err != nil {
		w.err = fmt.Errorf("tracewire: encode record %d: %w", w.n, err)
		return w.err
	}
	if _, err := w.w.Write(append(b, '\n')); err != nil {
		w.err = err
		return err
	}
	w.n++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Flush writes buffered records to the underlying writer.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// ReadAll decodes every record of a trace. Blank lines are skipped.
func ReadAll(r io.Reader) ([]Record, error) {
	var out []Record
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var rec Record
		if err := gojay.UnmarshalJSONObject(b, &rec); err != nil {
			return out, fmt.Errorf("tracewire: line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, sc.Err()
}

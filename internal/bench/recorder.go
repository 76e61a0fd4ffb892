package bench

import (
	"bufio"
	"fmt"
	"os"

	tomb "gopkg.in/tomb.v2"
)

const rowChanSize = 1024

type row struct {
	scenario string
	op       string
	ns       uint64
}

// Recorder streams one CSV row per timed operation to a file, off the
// driver's hot loop: Row only enqueues, a single writer goroutine owned by
// the tomb does the IO. Close tears the writer down and flushes; rows still
// queued at that point are drained before the file is closed.
type Recorder struct {
	t    tomb.Tomb
	rows chan row
	f    *os.File
	w    *bufio.Writer
}

func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := bufio.NewWriter(f)
	if _, err := w.WriteString("scenario,op,latency_ns\n"); err != nil {
		f.Close()
		return nil, err
	}

	r := &Recorder{
		rows: make(chan row, rowChanSize),
		f:    f,
		w:    w,
	}
	r.t.Go(r.loop)
	return r, nil
}

// Row enqueues one latency sample. Samples sent after Close starts tearing
// the recorder down are dropped.
func (r *Recorder) Row(scenario, op string, ns uint64) {
	select {
	case r.rows <- row{scenario: scenario, op: op, ns: ns}:
	case <-r.t.Dying():
	}
}

func (r *Recorder) loop() error {
	for {
		select {
		case rw := <-r.rows:
			if err := r.write(rw); err != nil {
				return err
			}
		case <-r.t.Dying():
			return r.drain()
		}
	}
}

func (r *Recorder) write(rw row) error {
	_, err := fmt.Fprintf(r.w, "%s,%s,%d\n", rw.scenario, rw.op, rw.ns)
	return err
}

func (r *Recorder) drain() error {
	for {
		select {
		case rw := <-r.rows:
			if err := r.write(rw); err != nil {
				return err
			}
		default:
			if err := r.w.Flush(); err != nil {
				return err
			}
			return r.f.Close()
		}
	}
}

// Close stops the writer and waits for the file to be flushed and closed.
func (r *Recorder) Close() error {
	r.t.Kill(nil)
	return r.t.Wait()
}

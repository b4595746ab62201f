// Package recorder writes board snapshots to a msgpack stream for replay
// and offline analysis, and reads them back.
package recorder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/plus3/blockfall/game"
	"github.com/plus3/blockfall/loop"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Frame is every board's snapshot at one scheduler tick.
type Frame struct {
	Tick      uint64          `msgpack:"tick"`
	DeltaTime float64         `msgpack:"dt"`
	Boards    []game.Snapshot `msgpack:"boards"`
}

// Recorder appends frames to a stream.
type Recorder struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
	frames int
}

// New records to w. Close flushes but does not close w.
func New(w io.Writer) *Recorder {
	buf := bufio.NewWriter(w)
	return &Recorder{buf: buf, enc: msgpack.NewEncoder(buf)}
}

// Create records to a new file at path.
func Create(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	r := New(f)
	r.closer = f
	return r, nil
}

// Record encodes one frame.
func (r *Recorder) Record(frame Frame) error {
	if err := r.enc.Encode(&frame); err != nil {
		return fmt.Errorf("record frame %d: %w", frame.Tick, err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames were recorded.
func (r *Recorder) Frames() int { return r.frames }

// Close flushes buffered frames and closes the file opened by Create.
func (r *Recorder) Close() error {
	err := r.buf.Flush()
	if err != nil {
		err = fmt.Errorf("flush recording: %w", err)
	}
	if r.closer != nil {
		err = errors.Join(err, r.closer.Close())
	}
	return err
}

// Reader decodes frames written by a Recorder.
type Reader struct {
	buf *bufio.Reader
	dec *msgpack.Decoder
}

func NewReader(rd io.Reader) *Reader {
	buf := bufio.NewReader(rd)
	return &Reader{buf: buf, dec: msgpack.NewDecoder(buf)}
}

// Next returns the next frame, or io.EOF after the last one. A stream that
// ends inside a frame yields io.ErrUnexpectedEOF.
func (r *Reader) Next() (Frame, error) {
	if _, err := r.buf.Peek(1); err == io.EOF {
		return Frame{}, io.EOF
	}

	var frame Frame
	if err := r.dec.Decode(&frame); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Frame{}, fmt.Errorf("read frame: %w", err)
	}
	return frame, nil
}

// System records the snapshots of its instances every Every ticks. The
// first failure stops recording and is kept for Err.
type System struct {
	Recorder  *Recorder
	Instances []*game.Instance
	Every     int

	log zerolog.Logger
	err error
}

func NewSystem(rec *Recorder, every int, instances ...*game.Instance) *System {
	return &System{
		Recorder:  rec,
		Instances: instances,
		Every:     max(every, 1),
		log:       log.Logger,
	}
}

func (s *System) Execute(frame *loop.Frame) {
	if s.err != nil || frame.Tick%uint64(max(s.Every, 1)) != 0 {
		return
	}

	out := Frame{
		Tick:      frame.Tick,
		DeltaTime: frame.DeltaTime,
		Boards:    make([]game.Snapshot, len(s.Instances)),
	}
	for i, inst := range s.Instances {
		out.Boards[i] = inst.Snapshot()
	}

	if err := s.Recorder.Record(out); err != nil {
		s.err = err
		s.log.Error().Err(err).Msg("recording stopped")
	}
}

func (s *System) SetLogger(l zerolog.Logger) { s.log = l }

// Err returns the error that stopped recording, if any.
func (s *System) Err() error { return s.err }

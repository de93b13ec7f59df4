package events

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Source yields events in match order. Next returns io.EOF once exhausted.
type Source interface {
	Next() (Event, error)
}

// SliceSource replays an in-memory event list. Reset rewinds it so the same
// match can be processed again.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource builds a Source over evs.
func NewSliceSource(evs ...Event) *SliceSource {
	return &SliceSource{events: evs}
}

// Next returns the next event or io.EOF.
func (s *SliceSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return nil, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// Reset rewinds the source to the first event.
func (s *SliceSource) Reset() {
	s.pos = 0
}

// Decoder reads telemetry records lazily from a reader holding either a JSON
// array of records or a sequence of concatenated (newline-delimited) records.
type Decoder struct {
	br      *bufio.Reader
	dec     *json.Decoder
	started bool
	inArray bool
	done    bool
	index   int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	br := bufio.NewReader(r)
	return &Decoder{br: br, dec: json.NewDecoder(br)}
}

// Next decodes the next record. A *RecordError means the record was skipped
// and decoding may continue; any other error ends the stream.
func (d *Decoder) Next() (Event, error) {
	if d.done {
		return nil, io.EOF
	}
	if !d.started {
		if err := d.start(); err != nil {
			d.done = true
			return nil, err
		}
	}

	if d.inArray {
		if !d.dec.More() {
			d.done = true
			if _, err := d.dec.Token(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("read closing bracket: %w", err)
			}
			return nil, io.EOF
		}
	}

	// Only a syntax error ends the stream; the raw record is interpreted
	// separately so a badly typed field costs one record.
	var raw json.RawMessage
	if err := d.dec.Decode(&raw); err != nil {
		d.done = true
		if errors.Is(err, io.EOF) && !d.inArray {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("decode record %d: %w", d.index, err)
	}
	index := d.index
	d.index++
	return decodeRecord(raw, index)
}

// start peeks at the first non-space byte to tell an array from a stream.
func (d *Decoder) start() error {
	d.started = true
	for {
		b, err := d.br.Peek(1)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return io.EOF
			}
			return fmt.Errorf("peek input: %w", err)
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			if _, err := d.br.ReadByte(); err != nil {
				return err
			}
			continue
		case '[':
			d.inArray = true
			if _, err := d.dec.Token(); err != nil {
				return fmt.Errorf("read opening bracket: %w", err)
			}
		}
		return nil
	}
}

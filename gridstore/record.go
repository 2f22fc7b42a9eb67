package gridstore

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// dtype tags the element type of a record.
type dtype uint8

const (
	dtInt8   dtype = 1
	dtInt32  dtype = 2
	dtString dtype = 3
)

// elemSize returns the byte width of one element, or 0 for strings.
func (d dtype) elemSize() int {
	switch d {
	case dtInt8:
		return 1
	case dtInt32:
		return 4
	}
	return 0
}

const (
	maxRecords     = 1 << 20
	maxDims        = 8
	maxRecordBytes = 64 << 20
)

// record is one named, typed, shaped array.
type record struct {
	name string
	typ  dtype
	dims []uint32
	data []byte
}

func int8Record(name string, dims []uint32, vals []byte) record {
	return record{name: name, typ: dtInt8, dims: dims, data: vals}
}

func int32Record(name string, dims []uint32, vals []int32) record {
	data := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(data[4*i:], uint32(v))
	}
	return record{name: name, typ: dtInt32, dims: dims, data: data}
}

func stringRecord(name, s string) record {
	return record{name: name, typ: dtString, data: []byte(s)}
}

// elems returns the product of dims; a scalar (no dims) has one element.
func (r record) elems() int {
	n := 1
	for _, d := range r.dims {
		n *= int(d)
		if n > maxRecordBytes {
			return maxRecordBytes + 1
		}
	}
	return n
}

// check validates the byte length against dtype and shape.
func (r record) check() error {
	switch r.typ {
	case dtInt8, dtInt32:
		if want := r.elems() * r.typ.elemSize(); len(r.data) != want {
			return fmt.Errorf("record %q: %d bytes for shape %v", r.name, len(r.data), r.dims)
		}
	case dtString:
		if len(r.dims) != 0 {
			return fmt.Errorf("record %q: string with shape %v", r.name, r.dims)
		}
	default:
		return fmt.Errorf("record %q: unknown dtype %d", r.name, r.typ)
	}
	return nil
}

// int32s decodes an int32 record.
func (r record) int32s() []int32 {
	out := make([]int32, len(r.data)/4)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(r.data[4*i:]))
	}
	return out
}

// scalarInt reads an int8 or int32 scalar.
func (r record) scalarInt() (int, error) {
	if len(r.dims) != 0 {
		return 0, fmt.Errorf("record %q: want scalar, got shape %v", r.name, r.dims)
	}
	switch r.typ {
	case dtInt8:
		return int(int8(r.data[0])), nil
	case dtInt32:
		return int(int32(binary.LittleEndian.Uint32(r.data))), nil
	}
	return 0, fmt.Errorf("record %q: want integer, got dtype %d", r.name, r.typ)
}

// points decodes an int32 [N, 2] record.
func (r record) points() ([][2]int32, error) {
	if r.typ != dtInt32 || len(r.dims) != 2 || r.dims[1] != 2 {
		return nil, fmt.Errorf("record %q: want int32 [N,2], got dtype %d shape %v", r.name, r.typ, r.dims)
	}
	vals := r.int32s()
	out := make([][2]int32, len(vals)/2)
	for i := range out {
		out[i] = [2]int32{vals[2*i], vals[2*i+1]}
	}
	return out, nil
}

// writeRecords encodes the payload: record count then each record.
func writeRecords(recs []record) ([]byte, error) {
	var buf bytes.Buffer
	le := binary.LittleEndian
	buf.Write(le.AppendUint32(nil, uint32(len(recs))))
	for _, r := range recs {
		if len(r.name) > math.MaxUint16 || len(r.dims) > maxDims {
			return nil, fmt.Errorf("gridstore: record %q not encodable", r.name)
		}
		buf.Write(le.AppendUint16(nil, uint16(len(r.name))))
		buf.WriteString(r.name)
		buf.WriteByte(byte(r.typ))
		buf.WriteByte(byte(len(r.dims)))
		for _, d := range r.dims {
			buf.Write(le.AppendUint32(nil, d))
		}
		buf.Write(le.AppendUint32(nil, uint32(len(r.data))))
		buf.Write(r.data)
	}
	return buf.Bytes(), nil
}

// decoder reads payload primitives and remembers the first error.
type decoder struct {
	r   io.Reader
	buf [4]byte
	err error
}

func (d *decoder) read(n int) []byte {
	if d.err != nil {
		return nil
	}
	if _, err := io.ReadFull(d.r, d.buf[:n]); err != nil {
		d.err = err
		return nil
	}
	return d.buf[:n]
}

func (d *decoder) u8() uint8 {
	if b := d.read(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *decoder) u16() uint16 {
	if b := d.read(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (d *decoder) u32() uint32 {
	if b := d.read(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (d *decoder) bytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(d.r, out); err != nil {
		d.err = err
		return nil
	}
	return out
}

// readRecords decodes a payload into records keyed by name. Truncation,
// oversize fields, duplicate names and shape mismatches are ErrCorrupt.
func readRecords(r io.Reader) (map[string]record, error) {
	d := &decoder{r: r}
	n := d.u32()
	if d.err != nil {
		return nil, corrupt("record count", d.err)
	}
	if n > maxRecords {
		return nil, fmt.Errorf("%w: %d records", ErrCorrupt, n)
	}

	out := make(map[string]record, min(n, 64))
	for i := uint32(0); i < n; i++ {
		var rec record
		rec.name = string(d.bytes(int(d.u16())))
		rec.typ = dtype(d.u8())
		ndim := int(d.u8())
		if ndim > maxDims {
			return nil, fmt.Errorf("%w: record %d has %d dims", ErrCorrupt, i, ndim)
		}
		for j := 0; j < ndim; j++ {
			rec.dims = append(rec.dims, d.u32())
		}
		size := d.u32()
		if size > maxRecordBytes {
			return nil, fmt.Errorf("%w: record %q is %d bytes", ErrCorrupt, rec.name, size)
		}
		rec.data = d.bytes(int(size))
		if d.err != nil {
			return nil, corrupt(fmt.Sprintf("record %d", i), d.err)
		}
		if err := rec.check(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if _, dup := out[rec.name]; dup {
			return nil, fmt.Errorf("%w: duplicate record %q", ErrCorrupt, rec.name)
		}
		out[rec.name] = rec
	}
	return out, nil
}

func corrupt(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: truncated %s", ErrCorrupt, what)
	}
	return fmt.Errorf("%w: %s: %w", ErrCorrupt, what, err)
}

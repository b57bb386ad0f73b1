package frontend

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Cristian13432/succinctx/vars"
)

// Writer encodes the persisted binary layout of generators: fixed-width
// big-endian scalar fields and length-prefixed wire lists.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer encoding to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteUint8 writes a single byte.
func (w *Writer) WriteUint8(v uint8) error {
	return binary.Write(w.w, binary.BigEndian, v)
}

// WriteUint64 writes an 8-byte big-endian integer.
func (w *Writer) WriteUint64(v uint64) error {
	return binary.Write(w.w, binary.BigEndian, v)
}

// WriteVariables writes a length-prefixed wire list: a 4-byte count
// followed by a 4-byte index and 1-byte kind per wire.
func (w *Writer) WriteVariables(list []vars.Variable) error {
	if err := binary.Write(w.w, binary.BigEndian, uint32(len(list))); err != nil {
		return err
	}
	for _, v := range list {
		if err := binary.Write(w.w, binary.BigEndian, v.Index()); err != nil {
			return err
		}
		if err := binary.Write(w.w, binary.BigEndian, uint8(v.Kind())); err != nil {
			return err
		}
	}
	return nil
}

// Reader decodes the layout produced by Writer. Truncated or malformed
// input surfaces as a read error; deserialization never panics.
type Reader struct {
	r io.Reader
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	var v uint8
	err := binary.Read(r.r, binary.BigEndian, &v)
	return v, err
}

// ReadUint64 reads an 8-byte big-endian integer.
func (r *Reader) ReadUint64() (uint64, error) {
	var v uint64
	err := binary.Read(r.r, binary.BigEndian, &v)
	return v, err
}

// ReadVariables reads a length-prefixed wire list.
func (r *Reader) ReadVariables() ([]vars.Variable, error) {
	var count uint32
	if err := binary.Read(r.r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	// count comes from untrusted bytes; cap the pre-allocation and let
	// append grow past it for genuinely large lists
	list := make([]vars.Variable, 0, min(count, 1024))
	for i := uint32(0); i < count; i++ {
		var index uint32
		if err := binary.Read(r.r, binary.BigEndian, &index); err != nil {
			return nil, err
		}
		var kind uint8
		if err := binary.Read(r.r, binary.BigEndian, &kind); err != nil {
			return nil, err
		}
		if vars.Kind(kind) > vars.Boolean {
			return nil, fmt.Errorf("invalid wire kind %d", kind)
		}
		list = append(list, vars.NewVariable(index, vars.Kind(kind)))
	}
	return list, nil
}

package acir

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Circuit is the unit the compiler hands to the solver and the toolchain
// stores on disk: the gate list plus the witness-index bookkeeping the
// surrounding layers need.
type Circuit struct {
	// CurrentWitnessIndex is the next free witness index.
	CurrentWitnessIndex uint32
	Gates               []Gate
	PublicInputs        []Witness
}

// WriteTo serializes the circuit with deterministic cbor encoding.
func (c *Circuit) WriteTo(w io.Writer) (int64, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	cw := &countWriter{w: w}
	if err := enc.NewEncoder(cw).Encode(c); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// ReadFrom deserializes a circuit written by WriteTo.
func (c *Circuit) ReadFrom(r io.Reader) (int64, error) {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	cr := &countReader{r: r}
	if err := dm.NewDecoder(cr).Decode(c); err != nil {
		return cr.n, err
	}
	return cr.n, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

type countReader struct {
	r io.Reader
	n int64
}

func (cr *countReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	return n, err
}

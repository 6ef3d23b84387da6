package acir

import (
	"errors"
	"fmt"

	"github.com/TomAFrench/noir/utils"
)

// Gate-list and witness byte codecs. Records are fixed width: witness
// indices are big-endian uint32, field elements are big-endian and
// field.SerializedLen() bytes wide.

func serializeExpression(o *utils.OutputBuf, e *Expression, field utils.SimpleField) {
	o.AppendUint64(uint64(len(e.MulTerms)))
	for _, t := range e.MulTerms {
		o.AppendFieldElement(field, t.Coeff)
		o.AppendUint32(uint32(t.WL))
		o.AppendUint32(uint32(t.WR))
	}
	o.AppendUint64(uint64(len(e.LinearCombinations)))
	for _, t := range e.LinearCombinations {
		o.AppendFieldElement(field, t.Coeff)
		o.AppendUint32(uint32(t.W))
	}
	o.AppendFieldElement(field, e.QC)
}

var errTruncatedGates = errors.New("truncated gate data")

func deserializeExpression(i *utils.InputBuf, field utils.SimpleField) (Expression, error) {
	var e Expression
	if n := i.ReadUint64(); n > 0 {
		// every term takes more than one byte, so a count past the
		// remaining length cannot be honest
		if n > uint64(i.Len()) {
			return e, errTruncatedGates
		}
		e.MulTerms = make([]MulTerm, n)
		for j := uint64(0); j < n; j++ {
			c := i.ReadFieldElement(field)
			wl := Witness(i.ReadUint32())
			wr := Witness(i.ReadUint32())
			e.MulTerms[j] = MulTerm{Coeff: c, WL: wl, WR: wr}
		}
	}
	if n := i.ReadUint64(); n > 0 {
		if n > uint64(i.Len()) {
			return e, errTruncatedGates
		}
		e.LinearCombinations = make([]LinearTerm, n)
		for j := uint64(0); j < n; j++ {
			c := i.ReadFieldElement(field)
			w := Witness(i.ReadUint32())
			e.LinearCombinations[j] = LinearTerm{Coeff: c, W: w}
		}
	}
	e.QC = i.ReadFieldElement(field)
	return e, nil
}

func serializeGate(o *utils.OutputBuf, g *Gate, field utils.SimpleField) {
	o.AppendUint8(uint8(g.Type))
	switch g.Type {
	case Arithmetic:
		serializeExpression(o, &g.Expr, field)
	case Directive:
		o.AppendUint8(uint8(g.Directive))
		o.AppendUint32(uint32(g.X))
		o.AppendUint32(uint32(g.Result))
	case Range:
		o.AppendUint32(uint32(g.X))
		o.AppendUint64(uint64(g.NumBits))
	case AND, XOR:
		o.AppendUint32(uint32(g.X))
		o.AppendUint32(uint32(g.Y))
		o.AppendUint32(uint32(g.Result))
		o.AppendUint64(uint64(g.NumBits))
	default:
		panic(fmt.Sprintf("unknown gate type %d", g.Type))
	}
}

func deserializeGate(i *utils.InputBuf, field utils.SimpleField) (Gate, error) {
	var g Gate
	g.Type = GateType(i.ReadUint8())
	switch g.Type {
	case Arithmetic:
		var err error
		g.Expr, err = deserializeExpression(i, field)
		if err != nil {
			return g, err
		}
	case Directive:
		g.Directive = DirectiveType(i.ReadUint8())
		g.X = Witness(i.ReadUint32())
		g.Result = Witness(i.ReadUint32())
	case Range:
		g.X = Witness(i.ReadUint32())
		g.NumBits = int(i.ReadUint64())
	case AND, XOR:
		g.X = Witness(i.ReadUint32())
		g.Y = Witness(i.ReadUint32())
		g.Result = Witness(i.ReadUint32())
		g.NumBits = int(i.ReadUint64())
	default:
		return g, fmt.Errorf("unknown gate type %d", g.Type)
	}
	return g, nil
}

// SerializeGates encodes the gate list with the buffer codec.
func SerializeGates(field utils.SimpleField, gates []Gate) []byte {
	o := &utils.OutputBuf{}
	o.AppendUint64(uint64(len(gates)))
	for j := range gates {
		serializeGate(o, &gates[j], field)
	}
	return o.Bytes()
}

// DeserializeGates decodes a gate list produced by SerializeGates. It
// never panics on malformed input: truncated buffers and implausible
// counts come back as errors.
func DeserializeGates(field utils.SimpleField, buf []byte) (gates []Gate, err error) {
	// InputBuf panics when a read runs past the end of the buffer; map
	// that to an error so arbitrary bytes cannot crash the caller.
	defer func() {
		if recover() != nil {
			gates, err = nil, errTruncatedGates
		}
	}()
	i := utils.NewInputBuf(buf)
	n := i.ReadUint64()
	if n > uint64(i.Len()) {
		return nil, errTruncatedGates
	}
	gates = make([]Gate, 0, n)
	for j := uint64(0); j < n; j++ {
		g, err := deserializeGate(i, field)
		if err != nil {
			return nil, err
		}
		gates = append(gates, g)
	}
	if !i.IsEnd() {
		return nil, errors.New("trailing bytes after gate list")
	}
	return gates, nil
}

// Bytes encodes the witness map as fixed-width records sorted by index.
func (m WitnessMap) Bytes(field utils.SimpleField) []byte {
	o := &utils.OutputBuf{}
	for _, w := range m.Indices() {
		o.AppendUint32(uint32(w))
		o.AppendFieldElement(field, m[w])
	}
	return o.Bytes()
}

// ReadWitnessMap decodes the fixed-width witness record format.
func ReadWitnessMap(field utils.SimpleField, buf []byte) (WitnessMap, error) {
	recordLen := 4 + field.SerializedLen()
	if len(buf)%recordLen != 0 {
		return nil, fmt.Errorf("witness data length %d is not a multiple of %d", len(buf), recordLen)
	}
	m := NewWitnessMap()
	i := utils.NewInputBuf(buf)
	for !i.IsEnd() {
		w := Witness(i.ReadUint32())
		if m.Has(w) {
			return nil, fmt.Errorf("duplicate witness %d", w)
		}
		m[w] = i.ReadFieldElement(field)
	}
	return m, nil
}

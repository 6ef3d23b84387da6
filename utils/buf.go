package utils

import (
	"encoding/binary"
	"math/big"

	"github.com/consensys/gnark/constraint"
)

// SimpleField is the subset of a field engine the codecs need.
type SimpleField interface {
	SerializedLen() int
	ToBigInt(c constraint.Element) *big.Int
	FromInterface(i interface{}) constraint.Element
}

type OutputBuf struct {
	buf []byte
}

// AppendBigInt writes x big-endian, zero-padded to n bytes.
func (o *OutputBuf) AppendBigInt(n int, x *big.Int) {
	zbuf := make([]byte, n)
	x.FillBytes(zbuf)
	o.buf = append(o.buf, zbuf...)
}

func (o *OutputBuf) AppendFieldElement(field SimpleField, x constraint.Element) {
	o.AppendBigInt(field.SerializedLen(), field.ToBigInt(x))
}

func (o *OutputBuf) AppendUint32(x uint32) {
	o.buf = binary.BigEndian.AppendUint32(o.buf, x)
}

func (o *OutputBuf) AppendUint64(x uint64) {
	o.buf = binary.BigEndian.AppendUint64(o.buf, x)
}

func (o *OutputBuf) AppendUint8(x uint8) {
	o.buf = append(o.buf, x)
}

func (o *OutputBuf) Bytes() []byte {
	return o.buf
}

type InputBuf struct {
	buf []byte
}

func NewInputBuf(buf []byte) *InputBuf {
	return &InputBuf{buf: buf}
}

func (i *InputBuf) ReadUint32() uint32 {
	x := binary.BigEndian.Uint32(i.buf[:4])
	i.buf = i.buf[4:]
	return x
}

func (i *InputBuf) ReadUint64() uint64 {
	x := binary.BigEndian.Uint64(i.buf[:8])
	i.buf = i.buf[8:]
	return x
}

func (i *InputBuf) ReadUint8() uint8 {
	x := i.buf[0]
	i.buf = i.buf[1:]
	return x
}

func (i *InputBuf) ReadBigInt(n int) *big.Int {
	x := new(big.Int).SetBytes(i.buf[:n])
	i.buf = i.buf[n:]
	return x
}

func (i *InputBuf) ReadFieldElement(field SimpleField) constraint.Element {
	return field.FromInterface(i.ReadBigInt(field.SerializedLen()))
}

func (i *InputBuf) IsEnd() bool {
	return len(i.buf) == 0
}

// Len returns the number of unread bytes.
func (i *InputBuf) Len() int {
	return len(i.buf)
}

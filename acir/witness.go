// Package acir holds the in-memory form of a compiled circuit: witnesses,
// affine-quadratic expressions and the gate list the solver consumes.
package acir

import (
	"fmt"
	"sort"

	"github.com/consensys/gnark/constraint"
)

// Witness is the index of one circuit variable. It carries no value; values
// live in a WitnessMap.
type Witness uint32

// WitnessOffset is the first index usable for circuit inputs. The proof
// system reserves index 0 for a constant-zero witness, so input indices
// start from 1.
const WitnessOffset Witness = 1

// WitnessMap assigns values to witnesses. It only ever grows: a witness,
// once assigned, keeps its value for the lifetime of the solving run.
type WitnessMap map[Witness]constraint.Element

func NewWitnessMap() WitnessMap {
	return make(WitnessMap)
}

func (m WitnessMap) Get(w Witness) (constraint.Element, bool) {
	v, ok := m[w]
	return v, ok
}

func (m WitnessMap) Has(w Witness) bool {
	_, ok := m[w]
	return ok
}

// Insert records a value for w. Re-inserting the same value is a no-op.
// Deriving a different value for an already-assigned witness means some
// deduction rule is algebraically unsound, so it panics instead of
// papering over it.
func (m WitnessMap) Insert(w Witness, v constraint.Element) {
	if old, ok := m[w]; ok {
		if old != v {
			panic(fmt.Sprintf("unexpected: conflicting values for witness %d", w))
		}
		return
	}
	m[w] = v
}

func (m WitnessMap) Len() int {
	return len(m)
}

// Indices returns the assigned witness indices in increasing order.
func (m WitnessMap) Indices() []Witness {
	res := make([]Witness, 0, len(m))
	for w := range m {
		res = append(res, w)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Clone copies the map. The solver mutates its own copy so the caller's
// initial assignment stays untouched.
func (m WitnessMap) Clone() WitnessMap {
	res := make(WitnessMap, len(m))
	for w, v := range m {
		res[w] = v
	}
	return res
}

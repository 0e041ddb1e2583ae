// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package isa

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// OpcodeClass identifies the coarse family an instruction belongs to.  The
// class determines which opcode module configures and assigns the
// corresponding event-table row.
type OpcodeClass uint64

const (
	// Const pushes an immediate typed value onto the stack.
	Const OpcodeClass = 1
	// Drop discards the value on top of the stack.
	Drop OpcodeClass = 2
	// Rel covers the relational (comparison) operators.
	Rel OpcodeClass = 3
)

func (p OpcodeClass) String() string {
	switch p {
	case Const:
		return "const"
	case Drop:
		return "drop"
	case Rel:
		return "rel"
	}
	//
	return "unknown"
}

// RelOp distinguishes the sub-operations of the relational class.
type RelOp uint64

const (
	// Eq is the equality comparison.
	Eq RelOp = 0
	// Ne is the inequality comparison.
	Ne RelOp = 1
)

// Shift amounts used for folding an opcode's class and operands into a
// single field element, as class<<ClassShift | arg0<<Arg0Shift |
// arg1<<Arg1Shift.  Each constituent sits in its own 16-bit window, which
// comfortably exceeds the bit-width of the largest constituent and hence
// makes the encoding injective over all valid (class, arg0, arg1) triples.
const (
	// ClassShift positions the opcode class.
	ClassShift = 96
	// Arg0Shift positions the primary discriminant (e.g. eq vs ne).
	Arg0Shift = 80
	// Arg1Shift positions the secondary discriminant (e.g. operand type).
	Arg1Shift = 64
)

// Opcode packs a (class, arg0, arg1) triple into a single field element.
func Opcode(class OpcodeClass, arg0 uint64, arg1 uint64) fr.Element {
	var acc big.Int
	// class << ClassShift
	acc.Lsh(new(big.Int).SetUint64(uint64(class)), ClassShift)
	// | arg0 << Arg0Shift
	acc.Or(&acc, new(big.Int).Lsh(new(big.Int).SetUint64(arg0), Arg0Shift))
	// | arg1 << Arg1Shift
	acc.Or(&acc, new(big.Int).Lsh(new(big.Int).SetUint64(arg1), Arg1Shift))
	//
	return FieldFromBig(&acc)
}

// ShiftedConst computes val << shift as a field element.  Opcode modules use
// this for the constant parts of their encoding expression.
func ShiftedConst(val uint64, shift uint) fr.Element {
	acc := new(big.Int).Lsh(new(big.Int).SetUint64(val), shift)
	//
	return FieldFromBig(acc)
}

// EncodeStep computes the opcode encoding of an executed step, as required
// for the instruction-fetch relation.  This must agree, for every step, with
// the symbolic encoding expression of the module which assigns it.
func EncodeStep(step StepInfo) fr.Element {
	switch s := step.(type) {
	case ConstStep:
		return Opcode(Const, 0, uint64(s.VType))
	case RelStep:
		return Opcode(Rel, uint64(s.Op), uint64(s.VType))
	case DropStep:
		return Opcode(Drop, 0, 0)
	}
	//
	panic("unknown step payload")
}

// FieldFromBig converts a big integer into a field element, reducing modulo
// the field order.
func FieldFromBig(val *big.Int) fr.Element {
	var elem fr.Element
	//
	elem.SetBigInt(val)
	//
	return elem
}

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

// Package rtable provides the range-table lookup contract.  Opcode modules
// invoke it at configuration time to prove that, whenever a given activation
// predicate holds, a value expression lies within a declared bounded set.
// How the lookup is cryptographically realised is not this package's
// concern; it records the logical relation and can check a concrete witness
// against it.
package rtable

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
	"github.com/consensys/go-zkwasm/pkg/isa"
)

// rangeCheck constrains value < 2^bitwidth on every row where enable is
// non-zero.
type rangeCheck struct {
	handle   string
	enable   ir.Expr
	value    ir.Expr
	bitwidth uint
}

// typedRangeCheck constrains (vtype, value) to the relation of well-typed
// pairs: vtype is a valid tag and value fits the bit-width that tag implies.
type typedRangeCheck struct {
	handle string
	enable ir.Expr
	vtype  ir.Expr
	value  ir.Expr
}

// RangeTableConfig accumulates the range lookups registered by opcode
// modules.  Registration is append-only during the configuration phase and
// the config is read-only thereafter.
type RangeTableConfig struct {
	ranges []rangeCheck
	typed  []typedRangeCheck
}

// NewRangeTableConfig constructs an empty range table configuration.
func NewRangeTableConfig() *RangeTableConfig {
	return &RangeTableConfig{}
}

// AddRangeConstraint registers a lookup proving value < 2^bitwidth whenever
// enable is non-zero.
func (p *RangeTableConfig) AddRangeConstraint(handle string, enable ir.Expr, value ir.Expr, bitwidth uint) {
	p.ranges = append(p.ranges, rangeCheck{handle, enable, value, bitwidth})
}

// AddTypedRangeConstraint registers a lookup proving that, whenever enable is
// non-zero, vtype is a valid type tag and value fits the bit-width implied by
// that tag.
func (p *RangeTableConfig) AddTypedRangeConstraint(handle string, enable ir.Expr, vtype ir.Expr, value ir.Expr) {
	p.typed = append(p.typed, typedRangeCheck{handle, enable, vtype, value})
}

// Accepts checks every registered range lookup against a concrete trace,
// returning a failure if one arose.  Lookups are independent of each other
// and hence checked in parallel.
func (p *RangeTableConfig) Accepts(tr ir.Trace) circuit.Failure {
	n := len(p.ranges)
	//
	return circuit.ParCheck(n+len(p.typed), func(i int) circuit.Failure {
		if i < n {
			return p.ranges[i].accepts(tr)
		}
		//
		return p.typed[i-n].accepts(tr)
	})
}

func (p *rangeCheck) accepts(tr ir.Trace) circuit.Failure {
	bound := twoPowN(p.bitwidth)
	//
	for k := 0; k < int(tr.Height()); k++ {
		active, val, err := evalActive(k, tr, p.enable, p.value)
		//
		if err != nil {
			return &circuit.InternalFailure{Handle: p.handle, Row: uint(k), Error: err.Error()}
		} else if active && val.Cmp(&bound) >= 0 {
			return &Failure{p.handle, uint(k), fmt.Sprintf("%s exceeds u%d", val.String(), p.bitwidth)}
		}
	}
	//
	return nil
}

func (p *typedRangeCheck) accepts(tr ir.Trace) circuit.Failure {
	for k := 0; k < int(tr.Height()); k++ {
		active, tag, err := evalActive(k, tr, p.enable, p.vtype)
		//
		if err != nil {
			return &circuit.InternalFailure{Handle: p.handle, Row: uint(k), Error: err.Error()}
		} else if !active {
			continue
		}
		// Check tag is valid
		vtype := isa.VarType(tag.Uint64())
		//
		if !tag.IsUint64() || !vtype.Valid() {
			return &Failure{p.handle, uint(k), fmt.Sprintf("invalid type tag %s", tag.String())}
		}
		// Check value fits the implied width
		val, verr := p.value.EvalAt(k, tr)
		if verr != nil {
			return &circuit.InternalFailure{Handle: p.handle, Row: uint(k), Error: verr.Error()}
		}
		//
		bound := twoPowN(vtype.BitWidth())
		if val.Cmp(&bound) >= 0 {
			return &Failure{p.handle, uint(k), fmt.Sprintf("%s does not fit %s", val.String(), vtype)}
		}
	}
	//
	return nil
}

// evalActive evaluates the enable predicate on a given row and, when active,
// the accompanying expression.
func evalActive(k int, tr ir.Trace, enable ir.Expr, expr ir.Expr) (bool, fr.Element, error) {
	var empty fr.Element
	//
	sel, err := enable.EvalAt(k, tr)
	if err != nil || sel.IsZero() {
		return false, empty, err
	}
	//
	val, err := expr.EvalAt(k, tr)
	//
	return true, val, err
}

func twoPowN(bitwidth uint) fr.Element {
	pow := new(big.Int).Lsh(big.NewInt(1), bitwidth)
	//
	return isa.FieldFromBig(pow)
}

// Failure indicates a value fell outside its declared bounded set.
type Failure struct {
	// Handle of the failing lookup.
	Handle string
	// Row of the trace on which the lookup failed.
	Row uint
	// Description of the offending value.
	Detail string
}

// Message implementation for the circuit.Failure interface.
func (p *Failure) Message() string {
	return fmt.Sprintf("range lookup %q failed on row %d: %s", p.Handle, p.Row, p.Detail)
}

func (p *Failure) String() string {
	return p.Message()
}

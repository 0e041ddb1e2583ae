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
package etable

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/isa"
	"github.com/consensys/go-zkwasm/pkg/itable"
	"github.com/consensys/go-zkwasm/pkg/mtable"
)

func newTestCircuit() *Circuit {
	return NewCircuit(
		ConstOpConfigBuilder{},
		DropOpConfigBuilder{},
		RelOpConfigBuilder{},
	)
}

func (p *Circuit) relConfig() *RelOpConfig {
	return p.Etable.configs[isa.Rel].(*RelOpConfig)
}

// traceI32Ne executes "push 1, push 2, not-equal, drop".
func traceI32Ne() []isa.EventTableEntry {
	return []isa.EventTableEntry{
		{Eid: 1, Sp: 0, Step: isa.ConstStep{VType: isa.I32, Value: 1}},
		{Eid: 2, Sp: 1, Step: isa.ConstStep{VType: isa.I32, Value: 2}},
		{Eid: 3, Sp: 2, Step: isa.RelStep{Op: isa.Ne, VType: isa.I32, Left: 1, Right: 2, Result: true}},
		{Eid: 4, Sp: 1, Step: isa.DropStep{}},
	}
}

// traceI32Eq executes "push left, push right, equal, drop".
func traceI32Eq(left uint64, right uint64) []isa.EventTableEntry {
	return []isa.EventTableEntry{
		{Eid: 1, Sp: 0, Step: isa.ConstStep{VType: isa.I32, Value: left}},
		{Eid: 2, Sp: 1, Step: isa.ConstStep{VType: isa.I32, Value: right}},
		{Eid: 3, Sp: 2, Step: isa.RelStep{Op: isa.Eq, VType: isa.I32,
			Left: left, Right: right, Result: left == right}},
		{Eid: 4, Sp: 1, Step: isa.DropStep{}},
	}
}

func cell(t *testing.T, tr *circuit.Matrix, col circuit.Column, row int) fr.Element {
	t.Helper()
	//
	val, err := tr.Cell(col.Index, row)
	require.NoError(t, err)
	//
	return val
}

func assertCell(t *testing.T, tr *circuit.Matrix, col circuit.Column, row int, expected uint64) {
	t.Helper()
	//
	actual := cell(t, tr, col, row)
	want := fr.NewElement(expected)
	assert.True(t, want.Equal(&actual),
		"cell (%s,%d): expected %d, got %s", col.Name, row, expected, actual.String())
}

func TestI32Ne(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		rel     = c.relConfig()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	require.Nil(t, c.Accepts(witness, entries))
	// The not-equal step reads 1 at the deeper slot, 2 at the shallower
	// slot, and writes true.
	assertCell(t, witness, rel.left.Value, 2, 1)
	assertCell(t, witness, rel.right.Value, 2, 2)
	assertCell(t, witness, rel.res, 2, 1)
	assertCell(t, witness, rel.isNe, 2, 1)
	assertCell(t, witness, rel.isEq, 2, 0)
	// Common columns carry the entry's eid and sp.
	assertCell(t, witness, c.Etable.Common().Eid, 2, 3)
	assertCell(t, witness, c.Etable.Common().Sp, 2, 2)
}

func TestI32Eq(t *testing.T) {
	tests := []struct {
		name     string
		left     uint64
		right    uint64
		expected uint64
	}{
		{"equal operands", 5, 5, 1},
		{"unequal operands", 5, 6, 0},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				c       = newTestCircuit()
				entries = traceI32Eq(tt.left, tt.right)
				rel     = c.relConfig()
			)
			//
			witness, err := c.Assign(entries)
			require.NoError(t, err)
			require.Nil(t, c.Accepts(witness, entries))
			//
			assertCell(t, witness, rel.res, 2, tt.expected)
			assertCell(t, witness, rel.isEq, 2, 1)
			assertCell(t, witness, rel.isNe, 2, 0)
		})
	}
}

// TestRejectBothSelectors forces is_eq and is_ne simultaneously on an active
// row, which must violate selector exhaustiveness.
func TestRejectBothSelectors(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		rel     = c.relConfig()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	//
	witness.Set(rel.isEq, 2, fr.NewElement(1))
	assert.NotNil(t, c.Accepts(witness, entries))
}

// TestRejectMismatchedOperandTypes assigns a 64-bit tag to one operand of a
// 32-bit comparison, which must violate type agreement.
func TestRejectMismatchedOperandTypes(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		rel     = c.relConfig()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	//
	witness.Set(rel.right.VType, 2, fr.NewElement(uint64(isa.I64)))
	assert.NotNil(t, c.Accepts(witness, entries))
}

// TestRejectNonBooleanSelector picks selector values which still sum to one,
// so only the boolean gates can catch them.
func TestRejectNonBooleanSelector(t *testing.T) {
	var (
		c        = newTestCircuit()
		entries  = traceI32Ne()
		rel      = c.relConfig()
		one      = fr.NewElement(1)
		minusOne fr.Element
	)
	//
	minusOne.Neg(&one)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	// 2 + (-1) = 1, yet neither value is a bit.
	witness.Set(rel.isNe, 2, fr.NewElement(2))
	witness.Set(rel.isEq, 2, minusOne)
	assert.NotNil(t, c.Accepts(witness, entries))
}

func TestRejectNonBooleanResult(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		rel     = c.relConfig()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	//
	witness.Set(rel.res, 2, fr.NewElement(2))
	assert.NotNil(t, c.Accepts(witness, entries))
}

// TestMemoryLookupCompleteness tampers with a popped operand so the emitted
// memory row no longer matches any access in the relation.
func TestMemoryLookupCompleteness(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		rel     = c.relConfig()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	//
	witness.Set(rel.right.Value, 2, fr.NewElement(7))
	//
	failure := c.Accepts(witness, entries)
	require.NotNil(t, failure)
	assert.IsType(t, &mtable.Failure{}, failure)
}

// TestOpcodeFetchConsistency flips the sub-opcode selector whilst leaving
// every gate satisfied: the decoded opcode then disagrees with the fetched
// instruction, which the aggregate fetch lookup must catch.
func TestOpcodeFetchConsistency(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		rel     = c.relConfig()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	//
	witness.Set(rel.isNe, 2, fr.NewElement(0))
	witness.Set(rel.isEq, 2, fr.NewElement(1))
	//
	failure := c.Accepts(witness, entries)
	require.NotNil(t, failure)
	assert.IsType(t, &itable.Failure{}, failure)
}

// TestStackPointerDelta checks the aggregate delta expression yields +1 for
// a push, -1 for the relational operator and -1 for drop.
func TestStackPointerDelta(t *testing.T) {
	var (
		c        = newTestCircuit()
		entries  = traceI32Ne()
		spDiff   = c.Etable.SpDiffExpr()
		one      = fr.NewElement(1)
		minusOne fr.Element
	)
	//
	minusOne.Neg(&one)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	//
	expected := []fr.Element{one, one, minusOne, minusOne}
	//
	for row, want := range expected {
		actual, err := spDiff.EvalAt(row, witness)
		require.NoError(t, err)
		assert.True(t, want.Equal(&actual),
			"row %d: expected %s, got %s", row, want.String(), actual.String())
	}
}

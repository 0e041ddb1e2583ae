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
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/go-zkwasm/pkg/isa"
)

func TestDispatchUnknownClass(t *testing.T) {
	var (
		// Only the const module is registered.
		c       = NewCircuit(ConstOpConfigBuilder{})
		entries = []isa.EventTableEntry{
			{Eid: 1, Sp: 0, Step: isa.ConstStep{VType: isa.I32, Value: 1}},
			{Eid: 2, Sp: 1, Step: isa.DropStep{}},
		}
		ae *AssignError
	)
	//
	_, err := c.Assign(entries)
	require.Error(t, err)
	require.True(t, errors.As(err, &ae))
	// Failure names the offending entry and module.
	assert.Equal(t, uint(2), ae.Eid)
	assert.Equal(t, isa.Drop, ae.Class)
}

func TestPayloadMismatch(t *testing.T) {
	var (
		c     = newTestCircuit()
		rel   = c.relConfig()
		entry = isa.EventTableEntry{Eid: 7, Sp: 1, Step: isa.ConstStep{VType: isa.I32, Value: 1}}
		ae    *AssignError
	)
	//
	row := &RowContext{c.CS.NewMatrix(1), 0}
	//
	err := rel.Assign(row, &entry)
	require.Error(t, err)
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, uint(7), ae.Eid)
	assert.Equal(t, isa.Rel, ae.Class)
}

func TestDuplicateModulePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewCircuit(RelOpConfigBuilder{}, RelOpConfigBuilder{})
	})
}

// TestOneHotDispatch raises a second class selector on an active row, which
// must violate the one-hot dispatch gate.
func TestOneHotDispatch(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	// The drop row additionally claims to be a const row.
	witness.Set(c.Etable.ClassBit(isa.Const), 3, fr.NewElement(1))
	assert.NotNil(t, c.Accepts(witness, entries))
}

// TestInactiveRowsUnconstrained verifies that disabling a row lifts the
// opcode module's gates from it, since every constraint is scaled by the
// row-enable predicate.
func TestInactiveRowsUnconstrained(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		rel     = c.relConfig()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	// Sanity check the selector tampering is caught whilst the row is live.
	witness.Set(rel.isEq, 2, fr.NewElement(1))
	require.NotNil(t, c.CS.Accepts(witness))
	// Disabling the row leaves it unconstrained.
	witness.Set(c.Etable.Common().Enable, 2, fr.NewElement(0))
	witness.Set(c.Etable.ClassBit(isa.Rel), 2, fr.NewElement(0))
	assert.Nil(t, c.CS.Accepts(witness))
}

func TestAggregateOpcode(t *testing.T) {
	var (
		c       = newTestCircuit()
		entries = traceI32Ne()
		opcode  = c.Etable.OpcodeExpr()
	)
	//
	witness, err := c.Assign(entries)
	require.NoError(t, err)
	// Every row decodes to the instruction the interpreter executed.
	for row, entry := range entries {
		expected := isa.EncodeStep(entry.Step)
		//
		actual, err := opcode.EvalAt(row, witness)
		require.NoError(t, err)
		assert.True(t, expected.Equal(&actual),
			"row %d: expected %s, got %s", row, expected.String(), actual.String())
	}
}

func TestConfigureColumnCount(t *testing.T) {
	c := newTestCircuit()
	// eid/sp/enable, three class bits, one typed slot for const, and the
	// relational module's three selectors plus two typed slots.
	assert.Equal(t, uint(15), c.CS.Width())
	// None of the implemented modules transfers control.
	assert.Equal(t, uint(0), c.Jump.Len())
}

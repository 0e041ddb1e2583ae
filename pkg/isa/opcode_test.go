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
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpcodeInjectivity enumerates every (class, arg0, arg1) triple
// reachable by the implemented opcode modules and checks no two distinct
// triples collide under the shift scheme.
func TestOpcodeInjectivity(t *testing.T) {
	var steps []StepInfo
	//
	for _, vtype := range VarTypes {
		steps = append(steps, ConstStep{VType: vtype})
		//
		for _, op := range []RelOp{Eq, Ne} {
			steps = append(steps, RelStep{Op: op, VType: vtype})
		}
	}
	//
	steps = append(steps, DropStep{})
	//
	seen := make(map[fr.Element]StepInfo)
	//
	for _, step := range steps {
		encoded := EncodeStep(step)
		//
		if prev, ok := seen[encoded]; ok {
			t.Errorf("%v and %v collide on %s", prev, step, encoded.String())
		}
		//
		seen[encoded] = step
	}
}

func TestOpcodeShiftWindows(t *testing.T) {
	var (
		expected fr.Element
		arg0     = ShiftedConst(5, Arg0Shift)
		arg1     = ShiftedConst(7, Arg1Shift)
		class    = ShiftedConst(uint64(Rel), ClassShift)
	)
	// Packing must equal the sum of its shifted parts.
	expected.Add(&class, &arg0)
	expected.Add(&expected, &arg1)
	//
	actual := Opcode(Rel, 5, 7)
	assert.True(t, expected.Equal(&actual))
}

func TestVarTypeWidths(t *testing.T) {
	assert.Equal(t, uint(32), I32.BitWidth())
	assert.Equal(t, uint(64), I64.BitWidth())
	assert.Equal(t, uint(1), Bool.BitWidth())
	//
	assert.False(t, VarType(0).Valid())
	assert.False(t, VarType(4).Valid())
	assert.Panics(t, func() { VarType(0).BitWidth() })
}

func TestReadEventLog(t *testing.T) {
	data := []byte(`[
		{"eid":1,"sp":0,"op":"const","vtype":"i32","value":1},
		{"eid":2,"sp":1,"op":"const","vtype":"i32","value":2},
		{"eid":3,"sp":2,"op":"rel","rel":"ne","vtype":"i32","left":1,"right":2,"result":true},
		{"eid":4,"sp":1,"op":"drop"}
	]`)
	//
	entries, err := FromBytes(data)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	//
	assert.Equal(t, uint(3), entries[2].Eid)
	assert.Equal(t, uint(2), entries[2].Sp)
	assert.Equal(t, RelStep{Op: Ne, VType: I32, Left: 1, Right: 2, Result: true}, entries[2].Step)
	assert.Equal(t, DropStep{}, entries[3].Step)
}

func TestReadEventLogRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{`},
		{"unknown opcode", `[{"eid":1,"sp":0,"op":"select"}]`},
		{"unknown vtype", `[{"eid":1,"sp":0,"op":"const","vtype":"f32","value":1}]`},
		{"unknown rel op", `[{"eid":1,"sp":2,"op":"rel","rel":"lt","vtype":"i32"}]`},
		{"eid not increasing", `[{"eid":1,"sp":2,"op":"drop"},{"eid":1,"sp":1,"op":"drop"}]`},
		{"rel underflow", `[{"eid":1,"sp":1,"op":"rel","rel":"eq","vtype":"i32","left":1,"right":1,"result":true}]`},
		{"drop underflow", `[{"eid":1,"sp":0,"op":"drop"}]`},
	}
	//
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBytes([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

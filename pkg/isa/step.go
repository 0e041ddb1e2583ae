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

// StepInfo is the opcode-specific payload of one executed instruction step.
// Exactly one variant applies per step, and the variant determines which
// opcode module the step dispatches to during witness assignment.
type StepInfo interface {
	// Class returns the opcode class this payload belongs to.
	Class() OpcodeClass
}

// ConstStep pushes an immediate typed value onto the stack.
type ConstStep struct {
	// Type of the value pushed.
	VType VarType
	// Bit pattern of the value pushed.
	Value uint64
}

// Class implementation for the StepInfo interface.
func (p ConstStep) Class() OpcodeClass { return Const }

// DropStep discards the value on top of the stack.
type DropStep struct{}

// Class implementation for the StepInfo interface.
func (p DropStep) Class() OpcodeClass { return Drop }

// RelStep compares the two values on top of the stack, replacing them with a
// boolean result.
type RelStep struct {
	// Comparison performed (eq or ne).
	Op RelOp
	// Type shared by both operands.
	VType VarType
	// Bit pattern of the left (deeper) operand.
	Left uint64
	// Bit pattern of the right (shallower) operand.
	Right uint64
	// Result of the comparison.
	Result bool
}

// Class implementation for the StepInfo interface.
func (p RelStep) Class() OpcodeClass { return Rel }

// EventTableEntry records one executed instruction step, as produced by the
// external interpreter.  Entries are immutable once handed to the framework,
// and each is consumed exactly once by the matching opcode module.
type EventTableEntry struct {
	// Eid is the monotonic step identifier, starting from one.
	Eid uint
	// Sp is the index of the next free stack slot before the step executes.
	Sp uint
	// Step is the opcode-specific payload.
	Step StepInfo
}

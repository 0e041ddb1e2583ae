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

// Package etable configures the event table: the per-step heart of the
// circuit.  Each opcode module translates the operational semantics of its
// instruction class into gates over its own columns plus lookups into the
// shared tables, behind a fixed four-operation contract.  The package also
// dispatches witness assignment, handing each execution-trace entry to the
// one module whose class matches.
package etable

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-zkwasm/pkg/circuit"
	"github.com/consensys/go-zkwasm/pkg/ir"
	"github.com/consensys/go-zkwasm/pkg/isa"
	"github.com/consensys/go-zkwasm/pkg/itable"
	"github.com/consensys/go-zkwasm/pkg/jtable"
	"github.com/consensys/go-zkwasm/pkg/mtable"
	"github.com/consensys/go-zkwasm/pkg/rtable"
)

// OpcodeConfig is the opaque runtime interface every configured opcode
// module exposes.  The expressions returned by Opcode and SpDiff are scaled
// by the module's own enable predicate, so inactive rows contribute zero and
// per-module contributions can simply be summed across the event table.
type OpcodeConfig interface {
	// Opcode returns the symbolic opcode-encoding expression for the current
	// row.
	Opcode() ir.Expr
	// SpDiff returns the net stack-pointer delta this opcode class produces
	// on an active row.
	SpDiff() ir.Expr
	// Class returns the fixed opcode class this module handles, used for
	// dispatch at witness-generation time.
	Class() isa.OpcodeClass
	// Assign writes concrete values for an active row from the given trace
	// entry.  A payload variant not belonging to this module is an internal
	// consistency error.
	Assign(row *RowContext, entry *isa.EventTableEntry) error
}

// ConfigBuilder is the construction-time contract every opcode module
// implements.  Configure must be free of side effects beyond allocating
// columns, gates and lookups, and must draw columns only from the shared
// allocator so that distinct modules never alias columns.
type ConfigBuilder interface {
	Configure(
		cs *circuit.ConstraintSystem,
		common *CommonConfig,
		classBit circuit.Column,
		alloc *circuit.Allocator,
		rt *rtable.RangeTableConfig,
		it *itable.InstructionTableConfig,
		mt *mtable.MemoryTableConfig,
		jt *jtable.JumpTableConfig,
		enable ir.Expr,
	) OpcodeConfig
}

// EventTableConfig composes every opcode module's configuration into the
// aggregate event table.
type EventTableConfig struct {
	cs        *circuit.ConstraintSystem
	common    *CommonConfig
	classBits map[isa.OpcodeClass]circuit.Column
	configs   map[isa.OpcodeClass]OpcodeConfig
	// classes preserves registration order, for deterministic iteration.
	classes []isa.OpcodeClass
}

// Configure builds the event table by calling every opcode module's
// configure exactly once, threading the shared tables through so all
// modules' lookups land in the same aggregate relations.  Registering two
// modules for the same class is a circuit wiring defect and panics.
func Configure(
	cs *circuit.ConstraintSystem,
	alloc *circuit.Allocator,
	rt *rtable.RangeTableConfig,
	it *itable.InstructionTableConfig,
	mt *mtable.MemoryTableConfig,
	jt *jtable.JumpTableConfig,
	builders []ConfigBuilder,
) *EventTableConfig {
	//
	common := &CommonConfig{
		Eid:    cs.AdviceColumn("eid"),
		Sp:     cs.AdviceColumn("sp"),
		Enable: cs.AdviceColumn("enable"),
	}
	//
	p := &EventTableConfig{
		cs:        cs,
		common:    common,
		classBits: make(map[isa.OpcodeClass]circuit.Column),
		configs:   make(map[isa.OpcodeClass]OpcodeConfig),
	}
	//
	var (
		enable  = common.EnableExpr()
		one     = ir.Const64(1)
		bitSum  = make([]ir.Expr, 0, len(builders))
		opcodes = make([]ir.Expr, 0, len(builders))
	)
	// Enable predicate is a bit
	cs.CreateGate("etable: enable is bool",
		ir.Product(enable, ir.Subtract(enable, one)))
	//
	for _, builder := range builders {
		classBit := alloc.Next()
		config := builder.Configure(cs, common, classBit, alloc, rt, it, mt, jt, enable)
		class := config.Class()
		//
		if _, ok := p.configs[class]; ok {
			panic(fmt.Sprintf("duplicate opcode module for class %s", class))
		}
		//
		log.Debugf("configured opcode module %s (columns now %d)", class, cs.Width())
		//
		p.classBits[class] = classBit
		p.configs[class] = config
		p.classes = append(p.classes, class)
		bitSum = append(bitSum, classBit.Expr())
		opcodes = append(opcodes, config.Opcode())
		// Class selector is a bit
		cs.CreateGate(fmt.Sprintf("etable: %s bit is bool", class),
			ir.Product(classBit.Expr(), ir.Subtract(classBit.Expr(), one), enable))
	}
	// Exactly one class selected per active row
	cs.CreateGate("etable: one-hot class dispatch",
		ir.Product(ir.Subtract(ir.Sum(bitSum...), one), enable))
	// Fetched opcode must match decoded opcode
	it.AddInstructionLookup("etable: fetch", enable, ir.Sum(opcodes...))
	//
	return p
}

// Common returns the shared per-row configuration.
func (p *EventTableConfig) Common() *CommonConfig {
	return p.common
}

// ClassBit returns the one-hot selector column for a given class.
func (p *EventTableConfig) ClassBit(class isa.OpcodeClass) circuit.Column {
	return p.classBits[class]
}

// OpcodeExpr returns the aggregate opcode-encoding expression, being the sum
// of every module's contribution.
func (p *EventTableConfig) OpcodeExpr() ir.Expr {
	terms := make([]ir.Expr, len(p.classes))
	//
	for i, class := range p.classes {
		terms[i] = p.configs[class].Opcode()
	}
	//
	return ir.Sum(terms...)
}

// SpDiffExpr returns the aggregate stack-pointer delta expression, being the
// sum of every module's contribution.  The circuit aggregator folds this
// into the global stack-pointer transition check.
func (p *EventTableConfig) SpDiffExpr() ir.Expr {
	terms := make([]ir.Expr, len(p.classes))
	//
	for i, class := range p.classes {
		terms[i] = p.configs[class].SpDiff()
	}
	//
	return ir.Sum(terms...)
}

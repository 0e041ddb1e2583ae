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
	"encoding/json"

	"github.com/pkg/errors"
)

// jsonEvent is the on-disk form of one event-table entry.  Fields beyond
// eid/sp/op apply only to particular opcode classes.
type jsonEvent struct {
	Eid    uint   `json:"eid"`
	Sp     uint   `json:"sp"`
	Op     string `json:"op"`
	Rel    string `json:"rel,omitempty"`
	VType  string `json:"vtype,omitempty"`
	Value  uint64 `json:"value,omitempty"`
	Left   uint64 `json:"left,omitempty"`
	Right  uint64 `json:"right,omitempty"`
	Result bool   `json:"result,omitempty"`
}

// FromBytes parses an event log expressed in JSON notation, being an array of
// entries such as {"eid":1,"sp":0,"op":"const","vtype":"i32","value":1}.
// Entries must carry strictly increasing eids, since downstream memory
// lookups key accesses by (eid, access index), and sufficient stack depth
// for the slots their opcode pops.
func FromBytes(data []byte) ([]EventTableEntry, error) {
	var (
		rawEvents []jsonEvent
		entries   []EventTableEntry
		lastEid   uint
	)
	// Attempt to unmarshall
	if err := json.Unmarshal(data, &rawEvents); err != nil {
		return nil, errors.Wrap(err, "malformed event log")
	}
	//
	for i, raw := range rawEvents {
		entry, err := raw.toEntry()
		if err != nil {
			return nil, errors.Wrapf(err, "event %d", i)
		}
		// Sanity check eid ordering
		if entry.Eid <= lastEid {
			return nil, errors.Errorf("event %d: eid %d not strictly increasing", i, entry.Eid)
		}
		//
		lastEid = entry.Eid
		entries = append(entries, entry)
	}
	//
	return entries, nil
}

func (p *jsonEvent) toEntry() (EventTableEntry, error) {
	var step StepInfo
	//
	switch p.Op {
	case "const":
		vtype, err := vtypeOf(p.VType)
		if err != nil {
			return EventTableEntry{}, err
		}
		//
		step = ConstStep{vtype, p.Value}
	case "drop":
		// Drop pops one slot.
		if p.Sp < 1 {
			return EventTableEntry{}, errors.Errorf("stack underflow (sp %d)", p.Sp)
		}
		//
		step = DropStep{}
	case "rel":
		// Rel pops two slots.
		if p.Sp < 2 {
			return EventTableEntry{}, errors.Errorf("stack underflow (sp %d)", p.Sp)
		}
		//
		vtype, err := vtypeOf(p.VType)
		if err != nil {
			return EventTableEntry{}, err
		}
		//
		op, err := relOpOf(p.Rel)
		if err != nil {
			return EventTableEntry{}, err
		}
		//
		step = RelStep{op, vtype, p.Left, p.Right, p.Result}
	default:
		return EventTableEntry{}, errors.Errorf("unknown opcode %q", p.Op)
	}
	//
	return EventTableEntry{p.Eid, p.Sp, step}, nil
}

func vtypeOf(name string) (VarType, error) {
	switch name {
	case "i32":
		return I32, nil
	case "i64":
		return I64, nil
	case "bool":
		return Bool, nil
	}
	//
	return 0, errors.Errorf("unknown value type %q", name)
}

func relOpOf(name string) (RelOp, error) {
	switch name {
	case "eq":
		return Eq, nil
	case "ne":
		return Ne, nil
	}
	//
	return 0, errors.Errorf("unknown relational operator %q", name)
}

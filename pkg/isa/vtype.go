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

import "fmt"

// VarType is the small enumerated tag identifying the machine type of one
// stack operand.  The zero value is deliberately not a valid tag, so that an
// all-zero (padding) row can never alias a well-typed operand.
type VarType uint64

const (
	// I32 is the 32-bit integer type.
	I32 VarType = 1
	// I64 is the 64-bit integer type.
	I64 VarType = 2
	// Bool is the boolean type, as produced by comparison operators.
	Bool VarType = 3
)

// VarTypes lists every valid type tag.
var VarTypes = []VarType{I32, I64, Bool}

// Valid checks whether this tag is one of the enumerated types.
func (p VarType) Valid() bool {
	switch p {
	case I32, I64, Bool:
		return true
	}
	//
	return false
}

// BitWidth returns the number of bits a value of this type may occupy.  This
// determines the bound proved for the value via the range table.
func (p VarType) BitWidth() uint {
	switch p {
	case I32:
		return 32
	case I64:
		return 64
	case Bool:
		return 1
	}
	//
	panic(fmt.Sprintf("invalid type tag %d", uint64(p)))
}

func (p VarType) String() string {
	switch p {
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Bool:
		return "bool"
	}
	//
	return fmt.Sprintf("vartype(%d)", uint64(p))
}

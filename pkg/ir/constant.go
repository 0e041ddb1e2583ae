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
package ir

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Constant represents a fixed field element within an expression.
type Constant struct {
	Value fr.Element
}

// Const constructs an expression from a given field element.
func Const(val fr.Element) Expr {
	return &Constant{val}
}

// Const64 constructs a constant expression from a given unsigned integer.
func Const64(val uint64) Expr {
	var elem fr.Element
	//
	elem.SetUint64(val)
	//
	return &Constant{elem}
}

// ConstBig constructs a constant expression from a given big integer, which is
// reduced modulo the field order.  Negative values are supported, hence this
// is the way to construct e.g. a stack-pointer delta of -1.
func ConstBig(val *big.Int) Expr {
	var elem fr.Element
	//
	elem.SetBigInt(val)
	//
	return &Constant{elem}
}

// EvalAt implementation for Expr interface.
func (p *Constant) EvalAt(_ int, _ Trace) (fr.Element, error) {
	return p.Value, nil
}

// String implementation for Expr interface.
func (p *Constant) String() string {
	return p.Value.String()
}

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
package circuit

// ParCheck runs n independent checks in parallel using go-routines, one per
// check.  Checks must be pure with respect to each other: each reads the
// (frozen) configuration and the trace, and writes nothing.  Every check is
// always run to completion, with one failure (if any arose) returned.
func ParCheck(n int, check func(int) Failure) Failure {
	var failure Failure
	// Construct a communication channel for failures.
	c := make(chan Failure, n)
	// Launch checker for each item
	for i := 0; i < n; i++ {
		go func(i int) {
			// Send outcome back
			c <- check(i)
		}(i)
	}
	// Read responses back from each check.
	for i := 0; i < n; i++ {
		if f := <-c; f != nil {
			failure = f
		}
	}
	// Done
	return failure
}

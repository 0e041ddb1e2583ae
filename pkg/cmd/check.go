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
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/consensys/go-zkwasm/pkg/etable"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] event_log",
	Short: "Check an execution trace against the opcode circuits.",
	Long: `Configure the opcode circuits, assign a witness from the given
event log (a JSON array of executed steps) and check every gate and
lookup against it.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// Parse event log
		entries := readEventLog(args[0])
		log.Debugf("read %d event(s) from %s", len(entries), args[0])
		// Configuration phase
		circuit := etable.NewCircuit(
			etable.ConstOpConfigBuilder{},
			etable.DropOpConfigBuilder{},
			etable.RelOpConfigBuilder{},
		)
		// Assignment phase
		witness, err := circuit.Assign(entries)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		// Checking phase
		if failure := circuit.Accepts(witness, entries); failure != nil {
			reportFailure(failure.Message())
			os.Exit(1)
		}
		//
		fmt.Printf("trace accepted (%d rows, %d columns)\n", witness.Height(), circuit.CS.Width())
	},
}

// reportFailure prints a failure message, truncated to the width of the
// enclosing terminal (when there is one).
func reportFailure(msg string) {
	if width, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && width > 3 && len(msg) > width {
		msg = msg[:width-3] + "..."
	}
	//
	fmt.Fprintln(os.Stderr, msg)
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Command gateway is a sample client that drives a Fabric Gateway peer:
// evaluating and submitting transactions and listening for chaincode events.
package main

import (
	"fmt"
	"os"

	"github.com/cyanlink/fabric-gateway/cmd/gateway/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

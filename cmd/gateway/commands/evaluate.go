/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newEvaluateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <transaction> [args...]",
		Short: "Evaluate a transaction function and print its result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, err := connect(v)
			if err != nil {
				return err
			}
			defer gateway.Close()

			contract := gateway.GetNetwork(v.GetString("channel")).GetContract(v.GetString("chaincode"))

			result, err := contract.EvaluateTransaction(args[0], args[1:]...)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(result))
			return nil
		},
	}
}

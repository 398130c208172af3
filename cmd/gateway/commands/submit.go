/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commands

import (
	"fmt"

	"github.com/cyanlink/fabric-gateway/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSubmitCommand(v *viper.Viper) *cobra.Command {
	var async bool

	cmd := &cobra.Command{
		Use:   "submit <transaction> [args...]",
		Short: "Submit a transaction to the ledger and print its result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, err := connect(v)
			if err != nil {
				return err
			}
			defer gateway.Close()

			contract := gateway.GetNetwork(v.GetString("channel")).GetContract(v.GetString("chaincode"))

			if async {
				result, commit, err := contract.SubmitAsync(args[0], client.WithArguments(args[1:]...))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(result))

				status, err := commit.Status()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "transaction %s committed in block %d with status %s\n",
					status.TransactionID, status.BlockNumber, status.Code)
				return nil
			}

			result, err := contract.SubmitTransaction(args[0], args[1:]...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(result))
			return nil
		},
	}

	cmd.Flags().BoolVar(&async, "async", false, "print the result as soon as the orderer accepts the transaction")

	return cmd
}

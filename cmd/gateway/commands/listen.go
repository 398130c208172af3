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

func newListenCommand(v *viper.Viper) *cobra.Command {
	var startBlock uint64

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Listen for chaincode events and print them until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, err := connect(v)
			if err != nil {
				return err
			}
			defer gateway.Close()

			network := gateway.GetNetwork(v.GetString("channel"))

			var options []client.ChaincodeEventsOption
			if cmd.Flags().Changed("start-block") {
				options = append(options, client.WithStartBlock(startBlock))
			}

			events, err := network.ChaincodeEvents(cmd.Context(), v.GetString("chaincode"), options...)
			if err != nil {
				return err
			}

			for event := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "block %d txid %s event %s payload %s\n",
					event.BlockNumber, event.TransactionID, event.EventName, event.Payload)
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&startBlock, "start-block", 0, "block number at which to start reading events")

	return cmd
}

/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package commands

import (
	"crypto/x509"
	"os"

	"github.com/cyanlink/fabric-gateway/pkg/client"
	"github.com/cyanlink/fabric-gateway/pkg/identity"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// NewRootCommand creates the root gateway command with its subcommands.
// Flags can also be supplied through GATEWAY_ prefixed environment variables.
func NewRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "gateway",
		Short:        "Interact with a Fabric network through a Gateway peer",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("endpoint", "localhost:7051", "Gateway peer endpoint")
	flags.String("mspid", "", "MSP ID of the client identity")
	flags.String("certificate", "", "path to the client certificate PEM file")
	flags.String("key", "", "path to the client private key PEM file")
	flags.String("tls-ca", "", "path to the TLS CA certificate PEM file; plaintext is used when unset")
	flags.String("channel", "", "channel name")
	flags.String("chaincode", "", "chaincode name")

	v.SetEnvPrefix("GATEWAY")
	v.AutomaticEnv()
	cobra.CheckErr(v.BindPFlags(flags))

	cmd.AddCommand(newEvaluateCommand(v))
	cmd.AddCommand(newSubmitCommand(v))
	cmd.AddCommand(newListenCommand(v))

	return cmd
}

// connect builds a Gateway connection from the supplied configuration. The
// caller owns the returned Gateway and must close it.
func connect(v *viper.Viper) (*client.Gateway, error) {
	certificatePEM, err := os.ReadFile(v.GetString("certificate"))
	if err != nil {
		return nil, errors.Wrap(err, "error reading certificate")
	}
	certificate, err := identity.CertificateFromPEM(certificatePEM)
	if err != nil {
		return nil, err
	}
	id, err := identity.NewX509Identity(v.GetString("mspid"), certificate)
	if err != nil {
		return nil, err
	}

	keyPEM, err := os.ReadFile(v.GetString("key"))
	if err != nil {
		return nil, errors.Wrap(err, "error reading private key")
	}
	privateKey, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, err
	}
	sign, err := identity.NewPrivateKeySign(privateKey)
	if err != nil {
		return nil, err
	}

	transportCredentials, err := newTransportCredentials(v.GetString("tls-ca"))
	if err != nil {
		return nil, err
	}

	return client.Connect(
		id,
		client.WithSign(sign),
		client.WithEndpoint(v.GetString("endpoint"), grpc.WithTransportCredentials(transportCredentials)),
	)
}

func newTransportCredentials(tlsCAPath string) (credentials.TransportCredentials, error) {
	if tlsCAPath == "" {
		return insecure.NewCredentials(), nil
	}

	caPEM, err := os.ReadFile(tlsCAPath)
	if err != nil {
		return nil, errors.Wrap(err, "error reading TLS CA certificate")
	}

	certPool := x509.NewCertPool()
	if !certPool.AppendCertsFromPEM(caPEM) {
		return nil, errors.New("failed to add TLS CA certificate to pool")
	}

	return credentials.NewClientTLSFromCert(certPool, ""), nil
}

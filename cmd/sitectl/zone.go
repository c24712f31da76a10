package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ryojerryyu/blog-infra/config/domain"
)

func newZoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zone <domain>",
		Short: "Print the hosted zone a domain's records belong to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone, err := domain.ZoneFromDomain(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), zone)
			return err
		},
	}
}

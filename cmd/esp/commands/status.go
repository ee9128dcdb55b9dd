package commands

import (
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the national and Cape Town load-shedding status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := client.FetchStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, status)
		},
	}
}

func allowanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allowance",
		Short: "Print the token's API quota",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			allowance, err := client.FetchAllowance(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, allowance)
		},
	}
}

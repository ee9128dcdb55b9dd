package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"esp-monitor/pkg/esp"
)

var (
	token       string
	baseURL     string
	geocoderURL string
	client      *esp.Client
)

func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the esp command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "esp",
		Short:        "Query the EskomSePush load-shedding API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var opts []esp.Option
			if baseURL != "" {
				opts = append(opts, esp.WithBaseURL(baseURL))
			}
			client = esp.NewClient(token, opts...)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&token, "token", os.Getenv("ESP_TOKEN"), "API token (default $ESP_TOKEN)")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "API root (default "+esp.DefaultBaseURL+")")
	root.PersistentFlags().StringVar(&geocoderURL, "geocoder-url", "", "Nominatim root used by --address")

	root.AddCommand(statusCmd(), allowanceCmd(), areaCmd(), searchCmd(), nearbyCmd(), topicsCmd())
	return root
}

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

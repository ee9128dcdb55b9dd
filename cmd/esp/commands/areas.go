package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"esp-monitor/internal/geocode"
)

func areaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "area <id>",
		Short: "Print events, info and schedule for an area",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			area, err := client.FetchAreaInformation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, area)
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find areas by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.SearchAreas(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func nearbyCmd() *cobra.Command {
	var loc location
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List areas near a coordinate or address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := loc.resolve(cmd.Context())
			if err != nil {
				return err
			}
			result, err := client.FetchNearbyAreas(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	loc.flags(cmd)
	return cmd
}

func topicsCmd() *cobra.Command {
	var loc location
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List community topics near a coordinate or address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, lon, err := loc.resolve(cmd.Context())
			if err != nil {
				return err
			}
			result, err := client.FetchNearbyTopics(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	loc.flags(cmd)
	return cmd
}

// location is either an explicit coordinate or an address to geocode.
type location struct {
	lat, lon float64
	address  string
}

func (l *location) flags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&l.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&l.lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&l.address, "address", "", "street address to geocode instead of --lat/--lon")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	cmd.MarkFlagsOneRequired("lat", "address")
	cmd.MarkFlagsMutuallyExclusive("lat", "address")
}

func (l *location) resolve(ctx context.Context) (lat, lon float64, err error) {
	if l.address == "" {
		return l.lat, l.lon, nil
	}
	res, err := geocode.New(geocoderURL).Search(ctx, l.address)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode %q: %w", l.address, err)
	}
	if res == nil {
		return 0, 0, fmt.Errorf("address %q not found", l.address)
	}
	return res.Latitude, res.Longitude, nil
}

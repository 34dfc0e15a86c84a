package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gift-interop/disbridge/internal/geo"
	"github.com/gift-interop/disbridge/pkg/core"
)

var geoFormat string

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Convert between geodetic and DIS world coordinates",
}

var geoToWorldCmd = &cobra.Command{
	Use:   "to-world <lon,lat[,alt]>",
	Short: "Convert WGS84 longitude, latitude and altitude to DIS world coordinates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := geo.GeodeticFromString(args[0])
		if err != nil {
			return err
		}
		v, err := geo.GeocentricFromGeodetic(g)
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), geoFormat, v)
	},
}

var geoFromWorldCmd = &cobra.Command{
	Use:   "from-world <x> <y> <z>",
	Short: "Convert DIS world coordinates to WGS84 longitude, latitude and altitude",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var xyz [3]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid coordinate %q", a)
			}
			xyz[i] = v
		}
		g, err := geo.GeodeticFromGeocentric(core.Vector3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), geoFormat, g)
	},
}

func init() {
	rootCmd.AddCommand(geoCmd)
	geoCmd.AddCommand(geoToWorldCmd)
	geoCmd.AddCommand(geoFromWorldCmd)

	geoCmd.PersistentFlags().StringVarP(&geoFormat, "format", "f", "json", "Output format (json, yaml)")
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/airwatch-tw/aqimon/internal/geo"
	"github.com/airwatch-tw/aqimon/internal/station"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "List the known monitoring stations and their coordinates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := station.Load()
		if err != nil {
			return eris.Wrap(err, "stations: load table")
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tLAT\tLNG\tDIST_KM")
		for _, name := range table.Names() {
			c, _ := table.Lookup(name)
			d, _ := geo.DistanceKM(c.Latitude, c.Longitude,
				station.Reference.Latitude, station.Reference.Longitude)
			fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.2f\n", name, c.Latitude, c.Longitude, d)
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "stations: flush output")
		}

		fmt.Printf("\n%d stations, reference point %s (%.4f, %.4f)\n",
			table.Len(), station.ReferenceName,
			station.Reference.Latitude, station.Reference.Longitude)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

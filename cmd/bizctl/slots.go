package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/Bizops-api/internal/domain/entity"
	"github.com/jhoicas/Bizops-api/internal/domain/scheduling"
	"github.com/spf13/cobra"
)

func slotsCmd() *cobra.Command {
	var (
		start    string
		end      string
		duration int
		buffer   int
		date     string
		tz       string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Preview the slots an availability window offers",
		Long:  "Genera las franjas de una ventana y, con --date, sus instantes UTC en la zona indicada",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := entity.AvailabilityWindow{StartTime: start, EndTime: end, SlotDuration: duration, Buffer: buffer, Active: true}
			slots, err := scheduling.WindowSlots(w)
			if err != nil {
				return err
			}
			out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if date == "" {
				fmt.Fprintln(out, "START\tEND\tLABEL")
				for _, s := range slots {
					fmt.Fprintf(out, "%s\t%s\t%s\n", s.StartKey(), s.EndKey(), s.Label)
				}
				return out.Flush()
			}

			loc, err := scheduling.LoadZone(tz)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "START\tEND\tSTART_UTC\tEND_UTC")
			for _, s := range slots {
				from, err := scheduling.ZonedToUTC(date, s.Start, loc)
				if err != nil {
					return err
				}
				to, err := scheduling.ZonedToUTC(date, s.End, loc)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", s.StartKey(), s.EndKey(), from.Format(time.RFC3339), to.Format(time.RFC3339))
			}
			return out.Flush()
		},
	}

	cmd.Flags().StringVar(&start, "start", "09:00", "Window start (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "17:00", "Window end (HH:MM)")
	cmd.Flags().IntVar(&duration, "duration", scheduling.DefaultSlotDuration, "Slot duration in minutes")
	cmd.Flags().IntVar(&buffer, "buffer", 0, "Minutes between slots")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD) to convert to UTC")
	cmd.Flags().StringVar(&tz, "tz", "UTC", "IANA time zone of the host")
	return cmd
}

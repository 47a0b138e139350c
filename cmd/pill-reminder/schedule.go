package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sweeney/pill-reminder/internal/config"
	"github.com/sweeney/pill-reminder/internal/logic"
)

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print and validate the built-in dose table",
		Long: `Print the dose table compiled into this binary, with the time until each
box's next dose measured from the host clock. Exits non-zero if the table
is invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := time.Now()
			wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
			return printSchedule(cmd.OutOrStdout(), config.DefaultBoxes, wall)
		},
	}
}

func printSchedule(w io.Writer, boxes [logic.NumBoxes]config.BoxConfig, wall time.Time) error {
	for i, cfg := range boxes {
		b := logic.NewBox(i, cfg)
		var hours []int
		for _, h := range cfg.Doses {
			if h != 0 {
				hours = append(hours, h)
			}
		}

		next := color.New(color.FgHiBlack).Sprint("none")
		if h, mins, ok := logic.NextDose(b, wall); ok {
			next = color.New(color.FgHiMagenta).Sprintf("%02d:00 in %dh%02dm", h, mins/60, mins%60)
		}
		fmt.Fprintf(w, "Box %d  %-16s %-20s next %s\n", i+1, cfg.Name, doseList(hours), next)
	}

	if err := config.Validate(boxes[:]); err != nil {
		fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed).Sprint("INVALID"), err)
		return err
	}
	fmt.Fprintf(w, "%s\n", color.New(color.FgGreen).Sprint("schedule ok"))
	return nil
}

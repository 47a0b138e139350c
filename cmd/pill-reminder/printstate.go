package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sweeney/pill-reminder/internal/config"
	"github.com/sweeney/pill-reminder/internal/gpio"
	"github.com/sweeney/pill-reminder/internal/logic"
	"github.com/sweeney/pill-reminder/internal/rtc"
	"github.com/sweeney/pill-reminder/internal/status"
)

// statePolls is enough samples for every input to settle past its debounce.
const statePolls = 5

func printStateCmd() *cobra.Command {
	var o options
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "print-state",
		Short: "Sample the sensors and clock once and print each box's state",
		RunE: func(cmd *cobra.Command, args []string) error {
			o.display = "terminal"
			hw, err := openHardware(o)
			if err != nil {
				return failHardware(hw, err)
			}
			defer hw.Close()
			return printState(cmd.OutOrStdout(), hw.board, hw.clock, o, asJSON, time.Sleep)
		},
	}
	addHardwareFlags(cmd, &o)
	cmd.Flags().MarkHidden("display")
	cmd.Flags().DurationVar(&o.poll, "poll", 50*time.Millisecond, "Interval between samples")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the status snapshot as JSON")
	return cmd
}

// printState feeds a few samples through a fresh controller so the sensor
// debounce settles, then prints the resulting state. A dose whose window is
// open right now shows as DUE.
func printState(w io.Writer, board gpio.Board, clock rtc.Clock, o options, asJSON bool, sleep func(time.Duration)) error {
	start := time.Now()
	ctrl := logic.NewController(config.DefaultBoxes, start)

	for i := 0; i < statePolls; i++ {
		if i > 0 {
			sleep(o.poll)
		}
		wall, err := clock.Now()
		if err != nil {
			return fmt.Errorf("read clock: %w", err)
		}
		sample, err := board.Read()
		if err != nil {
			return fmt.Errorf("read gpio: %w", err)
		}
		ctrl.Update(logic.Input{
			Time:  start.Add(time.Duration(i) * config.SensorDebounce),
			Wall:  wall,
			Empty: sample.Empty,
		})
	}

	tracker := status.NewTracker(start, o.statusConfig())
	tracker.Update(ctrl.View(), ctrl.Counts())
	snap := tracker.Snapshot()

	if asJSON {
		_, err := fmt.Fprintf(w, "%s\n", status.FormatJSON(snap))
		return err
	}

	fmt.Fprintf(w, "Time: %s\n", snap.Wall.Format("2006-01-02 15:04:05"))
	for i, b := range snap.Boxes {
		fmt.Fprintf(w, "Box %d  %-16s %s  doses %s\n", i+1, b.Name, stateLabel(b), doseList(b.Doses))
	}
	return nil
}

// stateLabel returns the box state padded and colored for a terminal.
func stateLabel(b status.BoxStatus) string {
	s := status.BoxState(b)
	padded := fmt.Sprintf("%-8s", s)
	switch s {
	case "EMPTY":
		return color.New(color.FgRed, color.Bold).Sprint(padded)
	case "DUE":
		return color.New(color.FgYellow).Sprint(padded)
	case "REMINDER":
		return color.New(color.FgCyan).Sprint(padded)
	default:
		return color.New(color.FgGreen).Sprint(padded)
	}
}

func doseList(hours []int) string {
	if len(hours) == 0 {
		return "-"
	}
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	return strings.Join(parts, " ")
}

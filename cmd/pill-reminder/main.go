// Command pill-reminder drives a three-box medicine reminder: it watches the
// box sensors, raises dose and refill alerts on LEDs, a buzzer and a 16x2
// display, and logs every transition.
package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/sweeney/pill-reminder/internal/buildinfo"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pill-reminder",
		Short:   "Medicine pill box reminder controller",
		Version: buildinfo.String(),
		Long: `pill-reminder watches three pill boxes for emptiness, raises alerts when a
scheduled dose is due, and reports state on LEDs, a buzzer and a 16x2 LCD.
MENU cycles the display, SELECT acknowledges, holding SELECT resets a box.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(printStateCmd())
	rootCmd.AddCommand(scheduleCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

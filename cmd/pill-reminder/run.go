package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweeney/pill-reminder/internal/buildinfo"
	"github.com/sweeney/pill-reminder/internal/config"
	"github.com/sweeney/pill-reminder/internal/display"
	"github.com/sweeney/pill-reminder/internal/gpio"
	"github.com/sweeney/pill-reminder/internal/logic"
	"github.com/sweeney/pill-reminder/internal/mqtt"
	"github.com/sweeney/pill-reminder/internal/rtc"
	"github.com/sweeney/pill-reminder/internal/status"
)

func runCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the reminder control loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
	}
	addHardwareFlags(cmd, &o)
	cmd.Flags().DurationVar(&o.poll, "poll", 50*time.Millisecond, "Input polling interval")
	cmd.Flags().DurationVar(&o.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	cmd.Flags().StringVar(&o.broker, "broker", "", "MQTT broker address for the event mirror (empty to disable)")
	return cmd
}

func run(o options) error {
	if err := config.Validate(config.DefaultBoxes[:]); err != nil {
		return err
	}

	hw, err := openHardware(o)
	if err != nil {
		return failHardware(hw, err)
	}
	defer hw.Close()

	build, ok := buildinfo.BuildTime()
	if seeded, err := rtc.Seed(hw.clock, build, ok); err != nil {
		log.Printf("warning: %v", err)
	} else if seeded {
		log.Printf("warning: rtc lost power, clock set to build time %s", build.Format(mqtt.TimeFormat))
	}

	var publisher mqtt.Publisher = mqtt.Discard{}
	var mqttStatus mqtt.ConnectionStatus = mqtt.Discard{}
	if o.broker != "" {
		p := mqtt.NewRealPublisher(o.broker, "pill-reminder")
		defer p.Close()
		publisher, mqttStatus = p, p
	}

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), o.statusConfig())

	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	}

	log.Printf("started: version=%s poll=%v heartbeat=%v display=%s rtc=%s broker=%q",
		buildinfo.Short(), o.poll, o.heartbeat, o.display, o.rtc, o.broker)

	ticker := time.NewTicker(o.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(hw.board, hw.clock, hw.disp, publisher, mqttStatus, tracker, config.DefaultBoxes, o.heartbeat, time.Now, ticker.C, sigCh)
}

// runLoop is the cooperative control loop. Each tick reads the inputs,
// updates the controller, drives the outputs, refreshes the display, then
// handles buttons and reports the tick's events.
func runLoop(board gpio.Board, clock rtc.Clock, disp display.Display, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, boxes [logic.NumBoxes]config.BoxConfig, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	startTime := now()
	ctrl := logic.NewController(boxes, startTime)
	presenter := display.NewPresenter(startTime)
	presenter.Banner(disp, buildinfo.Short(), startTime)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			reason := signalName(s)
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    reason,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", reason)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			}
			return nil

		case <-tick:
			t := now()
			wall, err := clock.Now()
			if err != nil {
				log.Printf("rtc read error: %v", err)
				continue
			}
			sample, err := board.Read()
			if err != nil {
				log.Printf("gpio read error: %v", err)
				continue
			}

			in := logic.Input{
				Time:   t,
				Wall:   wall,
				Empty:  sample.Empty,
				Menu:   sample.Menu,
				Select: sample.Select,
			}
			events := ctrl.Update(in)

			out := ctrl.Outputs()
			if err := board.Write(gpio.Outputs{LEDs: out.LEDs, Buzzer: out.Buzzer}); err != nil {
				log.Printf("gpio write error: %v", err)
			}

			if ctrl.TakeRefresh() {
				presenter.Invalidate()
			}
			presenter.Present(disp, ctrl.View(), t)

			events = append(events, ctrl.HandleButtons(in)...)

			for _, event := range events {
				log.Printf("event: %s", describe(event))
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if tracker != nil {
				tracker.Update(ctrl.View(), ctrl.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}

			if hb := ctrl.CheckHeartbeat(t, heartbeat); hb != nil {
				c := hb.Counts
				log.Printf("heartbeat: uptime=%v empty=%d refilled=%d due=%d acknowledged=%d reset=%d",
					hb.Uptime, c.Empty, c.Refilled, c.Due, c.Acknowledged, c.Reset)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hb.Timestamp,
					Event:     "HEARTBEAT",
					Retained:  true,
				}
				if tracker != nil {
					hbEvent.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// describe renders an event for the log.
func describe(e logic.Event) string {
	switch {
	case e.Type == logic.EventDoseDue:
		return fmt.Sprintf("%s box=%d (%s) dose=%02d:00", e.Type, e.Box+1, e.BoxName, e.Hour)
	case e.Box >= 0:
		return fmt.Sprintf("%s box=%d (%s)", e.Type, e.Box+1, e.BoxName)
	default:
		return string(e.Type)
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	default:
		return "UNKNOWN"
	}
}

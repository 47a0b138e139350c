package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/sweeney/pill-reminder/internal/config"
	"github.com/sweeney/pill-reminder/internal/logic"
)

// Presenter decides when to redraw and what to draw. It holds no alert
// state; everything it shows is derived from the view passed in.
type Presenter struct {
	// Zero means "redraw on the next tick".
	lastUpdate time.Time
	holdUntil  time.Time
	epoch      time.Time
	last       Frame
}

// NewPresenter creates a presenter. The epoch anchors the reminder
// alternation cycle.
func NewPresenter(epoch time.Time) *Presenter {
	return &Presenter{epoch: epoch}
}

// Invalidate forces the next Present call to redraw.
func (p *Presenter) Invalidate() {
	p.lastUpdate = time.Time{}
}

// Due reports whether a redraw should happen at now.
func (p *Presenter) Due(now time.Time) bool {
	if now.Before(p.holdUntil) {
		return false
	}
	return p.lastUpdate.IsZero() || now.Sub(p.lastUpdate) >= config.DisplayRefresh
}

// Banner shows the welcome screen and holds it for config.BannerDuration.
func (p *Presenter) Banner(d Display, version string, now time.Time) {
	f := Frame{"Pill Reminder", truncate("v"+version, Columns)}
	Show(d, f)
	p.last = f
	p.holdUntil = now.Add(config.BannerDuration)
	p.lastUpdate = time.Time{}
}

// Present redraws the display if due. It returns true when the display was
// written. An unchanged frame is not rewritten on the periodic cadence.
func (p *Presenter) Present(d Display, v logic.View, now time.Time) bool {
	if !p.Due(now) {
		return false
	}
	forced := p.lastUpdate.IsZero()
	p.lastUpdate = now

	f := p.Render(v, now)
	if f == p.last && !forced {
		return false
	}
	Show(d, f)
	p.last = f
	return true
}

// Render projects the view into a frame. Precedence: refill confirmation,
// acknowledge confirmation, empty box, dose due, reminder (alternating with
// the normal screen every config.ReminderAlternate), normal screen.
// Within a level the lowest box index wins.
func (p *Presenter) Render(v logic.View, now time.Time) Frame {
	if v.RefillOverlay && v.RefillBox >= 0 && v.RefillBox < logic.NumBoxes {
		return Frame{fit("", v.Boxes[v.RefillBox].Name, " refilled"), "Thank you!"}
	}
	if v.AckOverlay {
		return Frame{"Acknowledged", "Buzzer muted"}
	}

	level, idx := logic.Current(v.Boxes[:])
	switch level {
	case logic.LevelEmpty:
		return Frame{fit("", v.Boxes[idx].Name, " EMPTY"), "Please refill"}
	case logic.LevelDue:
		b := v.Boxes[idx]
		return Frame{fit("Take ", b.Name, ""), fmt.Sprintf("Dose %02d:00 now", b.DueHour)}
	case logic.LevelReminder:
		if p.reminderPhase(now) {
			b := v.Boxes[idx]
			mins := logic.MinutesUntil(b.NextDoseHour, v.Wall.Hour(), v.Wall.Minute())
			return Frame{fit("Soon: ", b.Name, ""), fmt.Sprintf("%02d:00 in %dm", b.NextDoseHour, mins)}
		}
	}
	return normalScreen(v)
}

func (p *Presenter) reminderPhase(now time.Time) bool {
	return (now.Sub(p.epoch)/config.ReminderAlternate)%2 == 0
}

func normalScreen(v logic.View) Frame {
	switch v.Mode {
	case logic.ModeNextDose:
		return nextDoseScreen(v)
	case logic.ModeStatus:
		return statusScreen(v)
	default:
		return Frame{"Time " + v.Wall.Format("15:04:05"), "Date " + v.Wall.Format("02/01/2006")}
	}
}

func nextDoseScreen(v logic.View) Frame {
	best, bestMins, bestHour := -1, 0, 0
	for i, b := range v.Boxes {
		hour, mins, ok := logic.NextDose(b, v.Wall)
		if ok && (best < 0 || mins < bestMins) {
			best, bestMins, bestHour = i, mins, hour
		}
	}
	if best < 0 {
		return Frame{"Next dose", "None scheduled"}
	}
	return Frame{
		fit("Next: ", v.Boxes[best].Name, ""),
		fmt.Sprintf("%02d:00 in %dh%02dm", bestHour, bestMins/60, bestMins%60),
	}
}

// statusLetter is E(mpty), D(ue), R(eminder), F(illed just now) or O(k).
func statusLetter(b logic.Box) string {
	switch {
	case b.EmptyAlert:
		return "E"
	case b.ScheduleAlert:
		return "D"
	case b.Reminder:
		return "R"
	case b.JustRefilled:
		return "F"
	default:
		return "O"
	}
}

func statusScreen(v logic.View) Frame {
	parts := make([]string, 0, logic.NumBoxes)
	for i, b := range v.Boxes {
		parts = append(parts, fmt.Sprintf("%d:%s", i+1, statusLetter(b)))
	}
	title := "Box status"
	if v.Muted {
		title = "Box status  MUTE"
	}
	return Frame{title, strings.Join(parts, " ")}
}

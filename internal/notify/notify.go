// Package notify sends desktop notifications for recognition results,
// failures and saved drawings.
package notify

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sketchcalc/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventResult fires when a drawing was recognized.
	EventResult Event = "result"
	// EventError fires when a submission failed.
	EventError Event = "error"
	// EventSave fires when a drawing is written to disk.
	EventSave Event = "save"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "sketchcalc",
		Events: map[Event]EventPreference{
			EventResult: {Template: "Solved %s"},
			EventError:  {Template: "%s"},
			EventSave:   {Template: "Saved %s"},
		},
	}
}

// LoadPreferences applies environment overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SKETCHCALC_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	apply("SKETCHCALC_NOTIFY_RESULT_TEXT", EventResult)
	apply("SKETCHCALC_NOTIFY_ERROR_TEXT", EventError)
	apply("SKETCHCALC_NOTIFY_SAVE_TEXT", EventSave)
	return prefs
}

// send is swapped in tests.
var send = platform.Notify

// Notifier sends OS-level notifications for enabled events.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Result announces a recognized "expr = result" line.
func (n *Notifier) Result(status string) {
	n.dispatch(EventResult, status, platform.Options{})
}

// Error announces the user message of a failed submission.
func (n *Notifier) Error(message string) {
	n.dispatch(EventError, message, platform.Options{Urgent: true})
}

// Save announces a written file, using it as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Events[event].Template)
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil && !errors.Is(err, platform.ErrUnsupported) {
		log.Printf("notification %s: %v", event, err)
	}
}

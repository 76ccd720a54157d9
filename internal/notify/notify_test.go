package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/sketchcalc/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return err
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Result("2+2 = 4")
	n.Error("Network error. Check backend server.")
	n.Save("out.png")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %+v", *got)
	}
	var nilNotifier *Notifier
	nilNotifier.Result("x")
}

func TestResultAndError(t *testing.T) {
	got := capture(t, errors.New("bus down"))
	n := New(DefaultPreferences())
	n.Enable(EventResult, true)
	n.Enable(EventError, true)
	n.Result(" 2+2 = 4 ")
	n.Error("Error: Unexpected backend response.")
	if len(*got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*got))
	}
	if (*got)[0].body != "Solved 2+2 = 4" || (*got)[0].title != "sketchcalc" {
		t.Errorf("unexpected result notification %+v", (*got)[0])
	}
	if (*got)[1].body != "Error: Unexpected backend response." {
		t.Errorf("unexpected error notification %+v", (*got)[1])
	}
	if (*got)[0].opts.Urgent || !(*got)[1].opts.Urgent {
		t.Errorf("only failures should be urgent: %+v", *got)
	}
}

func TestSaveUsesAbsolutePathAsIcon(t *testing.T) {
	got := capture(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "drawing.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(*got))
	}
	if (*got)[0].body != "Saved "+path || (*got)[0].opts.IconPath != path {
		t.Errorf("unexpected save notification %+v", (*got)[0])
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SKETCHCALC_NOTIFY_TITLE", "Calc")
	t.Setenv("SKETCHCALC_NOTIFY_RESULT_TEXT", "Answer: %s")
	prefs := LoadPreferences()
	if prefs.Title != "Calc" {
		t.Errorf("title = %q", prefs.Title)
	}
	if prefs.Events[EventResult].Template != "Answer: %s" {
		t.Errorf("result template = %q", prefs.Events[EventResult].Template)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Errorf("save template = %q", prefs.Events[EventSave].Template)
	}
}

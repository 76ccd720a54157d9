package theme

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Mine\nOverlayText: #FF000080\n# comment\nUnknown: #000000\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Mine" {
		t.Errorf("Name = %q", th.Name)
	}
	if want := (color.RGBA{255, 0, 0, 128}); th.OverlayText != want {
		t.Errorf("OverlayText = %v, want %v", th.OverlayText, want)
	}
	if th.CanvasBackground != Default().CanvasBackground {
		t.Errorf("CanvasBackground changed: %v", th.CanvasBackground)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: red\n")); err == nil {
		t.Fatal("expected error for non-hex color")
	}
	if _, err := Parse(strings.NewReader("Background: #12345\n")); err == nil {
		t.Fatal("expected error for short hex")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	orig := Default()
	orig.Name = "Round"
	orig.StatusError = color.RGBA{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := Format(&buf, orig); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	back, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if *back != *orig {
		t.Errorf("round trip mismatch:\n%+v\n%+v", back, orig)
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	l := &Loader{}
	names := Names()
	if len(names) < 3 {
		t.Fatalf("expected embedded themes, got %v", names)
	}
	for _, name := range names {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if th.Name == "" {
			t.Errorf("theme %q has no name", name)
		}
	}
	def, err := l.Load("default")
	if err != nil {
		t.Fatal(err)
	}
	if *def != *Default() {
		t.Errorf("embedded default differs from Default():\n%+v\n%+v", def, Default())
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: FromDir\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Extra: map[string]*Theme{"inline": {Name: "Inline"}}}

	th, err := l.Load("mine")
	if err != nil || th.Name != "FromDir" {
		t.Fatalf("Load(mine) = %v, %v", th, err)
	}
	th, err = l.Load("inline")
	if err != nil || th.Name != "Inline" {
		t.Fatalf("Load(inline) = %v, %v", th, err)
	}
	th, err = l.Load(filepath.Join(dir, "mine.theme"))
	if err != nil || th.Name != "FromDir" {
		t.Fatalf("Load(path) = %v, %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

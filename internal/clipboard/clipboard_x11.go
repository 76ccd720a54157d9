//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Without cgo the clipboard is served directly over the X11 protocol. The
// process owns the CLIPBOARD selection after a write and answers requests
// from other clients until another owner takes over.

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		owner, initErr = newSelectionOwner()
	})
	return initErr
}

// WriteImage publishes img as image/png.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return owner.offer(nil, buf.Bytes())
}

// ReadImage fetches image/png from the current clipboard owner.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := owner.fetch(owner.atoms[atomPNG])
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errNoImage
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText publishes text as UTF8_STRING.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.offer([]byte(text), nil)
}

const (
	atomClipboard = iota
	atomTargets
	atomUTF8
	atomTextPlain
	atomPNG
	atomProperty
	atomCount
)

var atomNames = [atomCount]string{
	atomClipboard: "CLIPBOARD",
	atomTargets:   "TARGETS",
	atomUTF8:      "UTF8_STRING",
	atomTextPlain: "text/plain;charset=utf-8",
	atomPNG:       "image/png",
	atomProperty:  "SKETCHCALC_CLIPBOARD",
}

type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  [atomCount]xproto.Atom

	mu    sync.RWMutex
	text  []byte
	image []byte
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	mask := []uint32{xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify}
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, mask).Check(); err != nil {
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window}
	for i, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			xproto.DestroyWindow(conn, window)
			conn.Close()
			return nil, fmt.Errorf("intern %s: %w", name, err)
		}
		o.atoms[i] = reply.Atom
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) offer(text, img []byte) error {
	o.mu.Lock()
	o.text = append([]byte(nil), text...)
	o.image = append([]byte(nil), img...)
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms[atomClipboard], xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.text, o.image = nil, nil
			o.mu.Unlock()
		}
	}
}

// answer writes the requested target onto the requestor's property and
// notifies it. Unavailable targets are refused with AtomNone.
func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	o.mu.RLock()
	text, img := o.text, o.image
	o.mu.RUnlock()

	var (
		typ     xproto.Atom
		format  byte = 8
		payload []byte
	)
	switch e.Target {
	case o.atoms[atomTargets]:
		targets := []xproto.Atom{o.atoms[atomTargets]}
		if len(text) > 0 {
			targets = append(targets, o.atoms[atomUTF8], xproto.AtomString, o.atoms[atomTextPlain])
		}
		if len(img) > 0 {
			targets = append(targets, o.atoms[atomPNG])
		}
		payload = make([]byte, 4*len(targets))
		for i, a := range targets {
			xgb.Put32(payload[4*i:], uint32(a))
		}
		typ, format = xproto.AtomAtom, 32
	case o.atoms[atomUTF8], xproto.AtomString, o.atoms[atomTextPlain]:
		payload, typ = text, o.atoms[atomUTF8]
	case o.atoms[atomPNG]:
		payload, typ = img, o.atoms[atomPNG]
	}
	if len(payload) == 0 {
		property = xproto.AtomNone
	} else {
		units := uint32(len(payload)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, units, payload)
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// fetch asks the selection owner to convert CLIPBOARD to target on a
// throwaway window and returns the resulting property.
func (o *selectionOwner) fetch(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	prop := o.atoms[atomProperty]
	if err := xproto.ConvertSelectionChecked(conn, window, o.atoms[atomClipboard], target, prop, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, errNoImage
		}
		if e.Property != prop {
			continue
		}
		reply, perr := xproto.GetProperty(conn, false, window, prop, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = "/org/freedesktop/Notifications"
	notifyShow  = notifyDest + ".Notify"
	urgencyLow  = byte(0)
	urgencyHigh = byte(2)
)

// Notify sends a Freedesktop notification over the session bus.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{"urgency": dbus.MakeVariant(urgencyLow)}
	if opts.Urgent {
		hints["urgency"] = dbus.MakeVariant(urgencyHigh)
	}
	timeout := int32(opts.expiry().Milliseconds())
	call := conn.Object(notifyDest, notifyPath).Call(notifyShow, 0,
		AppName, uint32(0), opts.IconPath, title, body, []string{}, hints, timeout)
	return call.Err
}

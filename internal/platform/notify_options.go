// Package platform delivers desktop notifications through the host
// notification service.
package platform

import (
	"errors"
	"time"
)

// AppName identifies the application to the notification service.
const AppName = "sketchcalc"

// DefaultExpiry is used when Options.Expiry is zero.
const DefaultExpiry = 5 * time.Second

// ErrUnsupported is returned where the host has no notification service.
var ErrUnsupported = errors.New("desktop notifications unsupported on this platform")

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image shown with the
	// notification where supported.
	IconPath string
	// Urgent marks failures so the host can style them differently.
	Urgent bool
	// Expiry is how long the notification stays on screen.
	Expiry time.Duration
}

func (o Options) expiry() time.Duration {
	if o.Expiry <= 0 {
		return DefaultExpiry
	}
	return o.Expiry
}

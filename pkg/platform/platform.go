// Package platform resolves the device family the app runs on and exposes
// its capabilities (exit, key map, lifecycle notifications) behind one
// interface, so no other package has to probe for vendor APIs.
package platform

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/tvnav/pkg/keys"
)

// Kind identifies the device family.
type Kind string

const (
	// Samsung represents Tizen TVs.
	Samsung Kind = "samsung"
	// LG represents webOS TVs.
	LG Kind = "lg"
	// Web represents a generic browser.
	Web Kind = "web"
)

// ParseKind parses a platform name. "auto" and the empty string are not
// kinds; callers resolve them with Detect.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Samsung, LG, Web:
		return k, nil
	case "tizen":
		return Samsung, nil
	case "webos":
		return LG, nil
	}
	return "", fmt.Errorf("platform: unknown kind %q", s)
}

// IsTV reports whether the kind is a television certification target.
func (k Kind) IsTV() bool {
	return k == Samsung || k == LG
}

// ErrUnsupported is returned by capabilities the host cannot provide.
var ErrUnsupported = errors.New("platform: not supported")

// LifecycleHooks are the visibility callbacks a platform reports.
type LifecycleHooks struct {
	OnHidden  func()
	OnVisible func()
}

// LifecycleSource delivers OS visibility changes to subscribed hooks.
type LifecycleSource interface {
	Subscribe(h LifecycleHooks) error
}

// Capabilities is everything the app needs from the platform.
type Capabilities interface {
	Kind() Kind
	KeyMap() *keys.Map
	Exit() error
	RegisterLifecycleHooks(h LifecycleHooks) error
	ScreensaverRequired() bool
}

// Device is the Capabilities implementation for a resolved Kind.
type Device struct {
	kind      Kind
	keymap    *keys.Map
	exit      func() error
	lifecycle LifecycleSource
}

// DeviceOption configures a Device.
type DeviceOption func(*Device)

// WithExit sets the function that terminates the app.
func WithExit(fn func() error) DeviceOption {
	return func(d *Device) { d.exit = fn }
}

// WithLifecycle sets the source of visibility notifications.
func WithLifecycle(src LifecycleSource) DeviceOption {
	return func(d *Device) { d.lifecycle = src }
}

// NewDevice returns the capabilities of kind. The key map is chosen once
// here and never changes afterwards.
func NewDevice(kind Kind, opts ...DeviceOption) *Device {
	d := &Device{kind: kind, keymap: keys.ForPlatform(string(kind))}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Kind implements Capabilities.
func (d *Device) Kind() Kind { return d.kind }

// KeyMap implements Capabilities.
func (d *Device) KeyMap() *keys.Map { return d.keymap }

// Exit implements Capabilities.
func (d *Device) Exit() error {
	if d.exit == nil {
		return ErrUnsupported
	}
	return d.exit()
}

// RegisterLifecycleHooks implements Capabilities. Without a lifecycle
// source it returns ErrUnsupported and the app carries on without
// suspend notifications.
func (d *Device) RegisterLifecycleHooks(h LifecycleHooks) error {
	if d.lifecycle == nil {
		return ErrUnsupported
	}
	if err := d.lifecycle.Subscribe(h); err != nil {
		return fmt.Errorf("platform: register lifecycle hooks: %w", err)
	}
	return nil
}

// ScreensaverRequired reports whether the platform's certification profile
// expects an idle screensaver. Both TV stores require one.
func (d *Device) ScreensaverRequired() bool {
	return d.kind.IsTV()
}

// Package waveform holds the device/button to IR waveform table.
//
// A Registry is built once at startup and never mutated, so lookups from
// concurrent request handlers need no locking.
package waveform

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrDeviceNotFound = errors.New("waveform: device not found")
	ErrButtonNotFound = errors.New("waveform: button not found")
)

// LookupError names the device or button that could not be resolved.
type LookupError struct {
	Device string
	Button string
	Err    error
}

func (e *LookupError) Error() string {
	if errors.Is(e.Err, ErrDeviceNotFound) {
		return fmt.Sprintf("Invalid device '%s'.", e.Device)
	}
	return fmt.Sprintf("Invalid button '%s' on device '%s'.", e.Button, e.Device)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Registry maps device name -> button name -> raw waveform.
type Registry struct {
	devices map[string]map[string][]byte
}

// New copies devices into a registry.
func New(devices map[string]map[string][]byte) *Registry {
	out := make(map[string]map[string][]byte, len(devices))
	for device, buttons := range devices {
		copied := make(map[string][]byte, len(buttons))
		for button, waveform := range buttons {
			copied[button] = append([]byte(nil), waveform...)
		}
		out[device] = copied
	}
	return &Registry{devices: out}
}

// File is the on-disk table shape:
//
//	[devices."TV"]
//	"power" = "0123abcd"
type File struct {
	Devices map[string]map[string]string `toml:"devices"`
}

// Load reads a waveform table written by wavegen.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("waveform table load failed (%s): %w", path, err)
	}
	return Parse(string(data))
}

// Parse decodes a waveform table from TOML text.
func Parse(data string) (*Registry, error) {
	var raw File
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("waveform table parse failed: %w", err)
	}
	devices := make(map[string]map[string][]byte, len(raw.Devices))
	for device, buttons := range raw.Devices {
		decoded := make(map[string][]byte, len(buttons))
		for button, code := range buttons {
			waveform, err := hex.DecodeString(strings.TrimSpace(code))
			if err != nil {
				return nil, fmt.Errorf("waveform table: device %q button %q: %w", device, button, err)
			}
			decoded[button] = waveform
		}
		devices[device] = decoded
	}
	return &Registry{devices: devices}, nil
}

// Lookup returns the waveform for device/button. The returned slice is
// shared and must not be modified.
func (r *Registry) Lookup(device, button string) ([]byte, error) {
	buttons, ok := r.devices[device]
	if !ok {
		return nil, &LookupError{Device: device, Button: button, Err: ErrDeviceNotFound}
	}
	waveform, ok := buttons[button]
	if !ok {
		return nil, &LookupError{Device: device, Button: button, Err: ErrButtonNotFound}
	}
	return waveform, nil
}

// Devices returns each device with its button names in sorted order.
func (r *Registry) Devices() map[string][]string {
	out := make(map[string][]string, len(r.devices))
	for device, buttons := range r.devices {
		names := make([]string, 0, len(buttons))
		for button := range buttons {
			names = append(names, button)
		}
		sort.Strings(names)
		out[device] = names
	}
	return out
}

// DeviceNames returns device names in sorted order.
func (r *Registry) DeviceNames() []string {
	names := make([]string, 0, len(r.devices))
	for device := range r.devices {
		names = append(names, device)
	}
	sort.Strings(names)
	return names
}

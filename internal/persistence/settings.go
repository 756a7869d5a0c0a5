// Package persistence manages the three on-disk artifacts that survive a
// restart: settings.txt (key/value optics and camera-offset config),
// offset.bin (rotation calibration and target pixel, platform-neutral
// binary), and coord_log.txt (an append-only position history). A
// fsnotify watcher reloads settings.txt on external edits.
package persistence

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"skyscope/internal/obscontext"
)

// Settings mirrors settings.txt's key/value lines.
type Settings struct {
	ApertureMM     float64
	FocalLengthMM  float64
	EyepieceMM     float64
	EyepieceFOVDeg float64
	XOffsetDeg     float64
	YOffsetDeg     float64
	ViewAngle      float64
}

// DefaultSettings mirrors obscontext.DefaultOptics with a zeroed camera
// offset and unit view angle.
func DefaultSettings() Settings {
	optics := obscontext.DefaultOptics()
	return Settings{
		ApertureMM:     optics.ApertureMM,
		FocalLengthMM:  optics.FocalLengthMM,
		EyepieceMM:     optics.EyepieceMM,
		EyepieceFOVDeg: optics.EyepieceFOVDeg,
		ViewAngle:      optics.Zoom,
	}
}

// LoadSettings reads key/value lines from path. A missing file returns
// DefaultSettings with no error, matching first-run behavior.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		applySettingField(&s, key, v)
	}
	if err := scanner.Err(); err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	return s, nil
}

func applySettingField(s *Settings, key string, v float64) {
	switch key {
	case "aperture":
		s.ApertureMM = v
	case "focal_length":
		s.FocalLengthMM = v
	case "eyepiece":
		s.EyepieceMM = v
	case "eyepiece_fov":
		s.EyepieceFOVDeg = v
	case "x_offset":
		s.XOffsetDeg = v
	case "y_offset":
		s.YOffsetDeg = v
	case "view_angle":
		s.ViewAngle = v
	}
}

// SaveSettings writes s to path as key/value lines, overwriting any
// existing file. aperture/focal_length/eyepiece/eyepiece_fov are written as
// plain integers and x_offset/y_offset/view_angle as single-decimal floats,
// matching the on-disk format a hand-edited settings.txt is expected to use.
func SaveSettings(path string, s Settings) error {
	var b strings.Builder
	fmt.Fprintf(&b, "aperture: %d\n", int(s.ApertureMM))
	fmt.Fprintf(&b, "focal_length: %d\n", int(s.FocalLengthMM))
	fmt.Fprintf(&b, "eyepiece: %d\n", int(s.EyepieceMM))
	fmt.Fprintf(&b, "eyepiece_fov: %d\n", int(s.EyepieceFOVDeg))
	fmt.Fprintf(&b, "x_offset: %.1f\n", s.XOffsetDeg)
	fmt.Fprintf(&b, "y_offset: %.1f\n", s.YOffsetDeg)
	fmt.Fprintf(&b, "view_angle: %.1f\n", s.ViewAngle)

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// ToOptics converts Settings into a TelescopeOptics, preserving the
// pollution offset and light-pollution derating from the existing value
// since settings.txt never carries them.
func (s Settings) ToOptics(existing obscontext.TelescopeOptics) obscontext.TelescopeOptics {
	existing.ApertureMM = s.ApertureMM
	existing.FocalLengthMM = s.FocalLengthMM
	existing.EyepieceMM = s.EyepieceMM
	existing.EyepieceFOVDeg = s.EyepieceFOVDeg
	existing.Zoom = s.ViewAngle
	return existing
}

// ToCameraOffset converts the settings' x/y offset fields into a
// CameraOffset, per the Open Question resolution that x_offset maps to
// azimuth and y_offset to altitude.
func (s Settings) ToCameraOffset() obscontext.CameraOffset {
	return obscontext.CameraOffset{DeltaAltDeg: s.YOffsetDeg, DeltaAzDeg: s.XOffsetDeg}
}

// FromCameraOffset updates the settings' x/y offset fields from a
// CameraOffset, for saving after an alignment change.
func (s *Settings) FromCameraOffset(o obscontext.CameraOffset) {
	s.YOffsetDeg = o.DeltaAltDeg
	s.XOffsetDeg = o.DeltaAzDeg
}

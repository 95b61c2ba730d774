package imageprocessor

import (
	"bytes"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// CaptureInfo holds the camera metadata worth keeping alongside an ingested
// image. The bitmap itself is stripped of EXIF during normalization, so this
// is the only place the information survives.
type CaptureInfo struct {
	CameraModel string
	TakenAt     *time.Time
}

// ExtractCaptureInfo reads camera metadata from the raw source bytes. Images
// without EXIF data are common and yield a nil result, not an error.
func ExtractCaptureInfo(data []byte) *CaptureInfo {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}

	info := &CaptureInfo{}

	if m, err := x.Get(exif.Model); err == nil {
		info.CameraModel = strings.TrimSpace(strings.Trim(m.String(), `"`))
	}

	if dt, err := x.DateTime(); err == nil {
		info.TakenAt = &dt
	}

	if info.CameraModel == "" && info.TakenAt == nil {
		return nil
	}
	return info
}

// internal/exif/exif.go
package exif

import (
	"io"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Data holds the EXIF fields preserved as object metadata.
type Data struct {
	DateTime *time.Time
	Make     string
	Model    string
}

// Extract reads EXIF metadata from r. Files without EXIF (or non-image
// files) return an error and are uploaded without capture metadata.
func Extract(r io.Reader) (*Data, error) {
	x, err := exif.Decode(r)
	if err != nil {
		return nil, err
	}

	data := &Data{}

	if dt, err := x.DateTime(); err == nil {
		data.DateTime = &dt
	}

	if tag, err := x.Get(exif.Make); err == nil {
		if str, err := tag.StringVal(); err == nil {
			data.Make = str
		}
	}

	if tag, err := x.Get(exif.Model); err == nil {
		if str, err := tag.StringVal(); err == nil {
			data.Model = str
		}
	}

	return data, nil
}

// ToMap converts the extracted fields to object metadata entries. Empty
// fields are omitted.
func (d *Data) ToMap() map[string]string {
	m := make(map[string]string)

	if d.DateTime != nil {
		m["capture-time"] = d.DateTime.UTC().Format(time.RFC3339)
	}
	if d.Make != "" {
		m["camera-make"] = d.Make
	}
	if d.Model != "" {
		m["camera-model"] = d.Model
	}

	return m
}

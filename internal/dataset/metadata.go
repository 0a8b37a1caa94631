package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ganot/labelcap/internal/domain/record"
)

// Metadata is the structured artifact written next to every image. The key
// names are the tool's long-standing on-disk format; exports and the catalog
// both read it back.
type Metadata struct {
	Timestamp  string                `json:"timestamp"`
	ClassID    string                `json:"class"`
	Attributes map[string]any        `json:"attributes"`
	Capture    record.CameraSettings `json:"capture"`
	ImageFile  string                `json:"image_file"`
	Session    string                `json:"session,omitempty"`
}

func metadataFor(rec *record.Record, imageFile string) *Metadata {
	return &Metadata{
		Timestamp:  rec.Timestamp.Format(time.RFC3339Nano),
		ClassID:    rec.ClassID,
		Attributes: rec.Attributes,
		Capture:    rec.Camera,
		ImageFile:  imageFile,
		Session:    rec.RunID,
	}
}

// ReadMeta parses one metadata artifact. A file that fails to parse or
// carries no class is malformed; batch consumers skip such files.
func ReadMeta(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	if meta.ClassID == "" {
		return nil, fmt.Errorf("parse metadata %s: missing class", path)
	}
	return &meta, nil
}

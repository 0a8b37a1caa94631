package record

import "errors"

// ErrNoFrame indicates no frame is available to save. The save is refused
// rather than recorded with a placeholder.
var ErrNoFrame = errors.New("no frame available")

// Package notes normalizes raw technician input before classification.
package notes

import (
	"fmt"
	"strings"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// VideoMarker is appended verbatim when a walkaround video accompanies the
// notes. Downstream keyword matching sees the merged text.
const VideoMarker = " [Video transcript merged into notes.]"

// Normalize trims the technician notes and merges the video marker when a
// video was attached. Empty notes are allowed; the classifier falls back to a
// general diagnostic.
func Normalize(text string, hasVideo bool) (string, []types.Event) {
	events := []types.Event{}
	decoded := strings.TrimSpace(text)

	if decoded == "" {
		events = append(events, types.Event{
			Stage:    types.StageNotes,
			Category: "empty_input",
			Message:  "No technician notes provided; estimate will fall back to a general diagnostic",
			Severity: types.SeverityFlagged,
		})
	}

	if hasVideo {
		decoded += VideoMarker
		events = append(events, types.Event{
			Stage:    types.StageNotes,
			Category: "video_merge",
			Message:  "Walkaround video transcript merged into notes",
			Severity: types.SeverityInfo,
		})
	}

	events = append(events, types.Event{
		Stage:    types.StageNotes,
		Category: "normalized",
		Message:  fmt.Sprintf("Notes normalized to %d characters", len(decoded)),
		Severity: types.SeverityInfo,
	})

	return decoded, events
}

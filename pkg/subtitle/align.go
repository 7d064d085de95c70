package subtitle

import "fmt"

// Player is the minimal surface of an embedded video player that alignment
// helpers drive. The concrete player lives on the client; server-side code
// only ever sees this interface in tests.
type Player interface {
	SeekTo(seconds float64)
}

// CurrentCue returns the cue whose [Start, End] interval contains t. With
// overlapping cues the earliest-ordered match wins.
func CurrentCue(cues []Cue, t float64) (Cue, bool) {
	for _, cue := range cues {
		if t >= cue.Start && t <= cue.End {
			return cue, true
		}
	}
	return Cue{}, false
}

// NextCue returns the first cue starting strictly after t.
func NextCue(cues []Cue, t float64) (Cue, bool) {
	for _, cue := range cues {
		if cue.Start > t {
			return cue, true
		}
	}
	return Cue{}, false
}

// PreviousCue returns the last cue starting strictly before t.
func PreviousCue(cues []Cue, t float64) (Cue, bool) {
	found := false
	var prev Cue
	for _, cue := range cues {
		if cue.Start < t {
			prev = cue
			found = true
		}
	}
	return prev, found
}

// JumpTo seeks the player to the cue's start. No-op when no player is bound.
func JumpTo(cue Cue, player Player) {
	if player == nil {
		return
	}
	player.SeekTo(cue.Start)
}

// FormatTimestamp renders seconds as H:MM:SS once an hour has elapsed,
// otherwise M:SS, with zero-padded minutes and seconds.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

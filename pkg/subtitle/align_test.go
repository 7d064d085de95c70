package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleCues = []Cue{
	{Start: 0, End: 3, Text: "first"},
	{Start: 3.5, End: 6, Text: "second"},
	{Start: 5, End: 9, Text: "overlapping"},
	{Start: 10, End: 12, Text: "last"},
}

func TestCurrentCue(t *testing.T) {
	tests := []struct {
		name     string
		t        float64
		expected string
		found    bool
	}{
		{name: "inside first cue", t: 1.2, expected: "first", found: true},
		{name: "start boundary inclusive", t: 0, expected: "first", found: true},
		{name: "end boundary inclusive", t: 3, expected: "first", found: true},
		{name: "gap between cues", t: 3.2, found: false},
		{name: "overlap returns earliest match", t: 5.5, expected: "second", found: true},
		{name: "past all cues", t: 20, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cue, ok := CurrentCue(sampleCues, tt.t)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, cue.Text)
			}
		})
	}
}

func TestNextCue(t *testing.T) {
	cue, ok := NextCue(sampleCues, 1)
	require.True(t, ok)
	assert.Equal(t, "second", cue.Text)

	cue, ok = NextCue(sampleCues, 5)
	require.True(t, ok)
	assert.Equal(t, "last", cue.Text)

	_, ok = NextCue(sampleCues, 10)
	assert.False(t, ok, "no cue starts after the last one")
}

func TestPreviousCue(t *testing.T) {
	_, ok := PreviousCue(sampleCues, 0)
	assert.False(t, ok, "nothing before the first cue")

	cue, ok := PreviousCue(sampleCues, 4)
	require.True(t, ok)
	assert.Equal(t, "second", cue.Text)

	cue, ok = PreviousCue(sampleCues, 100)
	require.True(t, ok)
	assert.Equal(t, "last", cue.Text)
}

type fakePlayer struct {
	seekedTo []float64
}

func (p *fakePlayer) SeekTo(seconds float64) {
	p.seekedTo = append(p.seekedTo, seconds)
}

func TestJumpTo(t *testing.T) {
	player := &fakePlayer{}
	JumpTo(Cue{Start: 42.5, End: 45, Text: "x"}, player)
	require.Len(t, player.seekedTo, 1)
	assert.Equal(t, 42.5, player.seekedTo[0])

	// Must not panic without a bound player.
	JumpTo(Cue{Start: 1}, nil)
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00"},
		{65, "1:05"},
		{599, "9:59"},
		{600, "10:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3661, "1:01:01"},
		{7325.8, "2:02:05"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatTimestamp(tt.seconds))
	}
}

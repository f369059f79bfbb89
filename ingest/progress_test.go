package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 250, 100)

	tracker.Start()
	tracker.Increment(100)
	tracker.Increment(100)
	tracker.Increment(50)

	output := buf.String()
	assert.Contains(t, output, "100/250")
	assert.Contains(t, output, "200/250")
	assert.NotContains(t, output, "250/250", "last 50 is under the interval")

	tracker.Finish()
	assert.Contains(t, buf.String(), "250/250 verses (100.0%)")
	assert.Contains(t, buf.String(), "\n")
}

func TestProgressTracker_FinishKeepsShortCount(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 250, 100)

	tracker.Start()
	tracker.Increment(100)
	tracker.Finish()

	assert.Equal(t, 100, tracker.Current())
	assert.Contains(t, buf.String(), "100/250 verses (40.0%)")
}

func TestProgressTracker_CapsAtTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Start()
	tracker.Increment(150)

	assert.Equal(t, 100, tracker.Current())
	assert.Contains(t, buf.String(), "100/100")
}

func TestProgressTracker_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 0, 10)

	tracker.Start()
	tracker.Finish()

	assert.Contains(t, buf.String(), "0/0")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 100, 10)

	tracker.Increment(10)
	tracker.Finish()

	assert.Equal(t, "", buf.String(), "should have no output when not started")
}

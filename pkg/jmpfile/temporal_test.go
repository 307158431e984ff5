package jmpfile

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFormat(t *testing.T) {
	assert.Equal(t, dateTimeKind, classifyFormat(0x69))
	assert.Equal(t, timeOnlyKind, classifyFormat(0x79))
	assert.Equal(t, dateOnlyKind, classifyFormat(0x65))
	assert.Equal(t, durationKind, classifyFormat(0x6C))
	assert.Equal(t, nonTemporal, classifyFormat(0x00))
}

func TestMapTemporalNaNIsMissing(t *testing.T) {
	for _, kind := range []temporalKind{dateTimeKind, timeOnlyKind, dateOnlyKind, durationKind} {
		cell := mapTemporal(kind, math.NaN())
		assert.True(t, cell.IsMissing())
	}
}

func TestMapTemporalDuration(t *testing.T) {
	cell := mapTemporal(durationKind, -3661.5)
	assert.Equal(t, -(61*time.Minute + time.Second + 500*time.Millisecond), cell.Duration)
}

func TestMapTemporalDateTimeEpoch(t *testing.T) {
	cell := mapTemporal(dateTimeKind, 0)
	assert.True(t, cell.DateTime.Equal(epoch))
}

func TestSecondsToDurationSubSecondPrecision(t *testing.T) {
	d := secondsToDuration(1.000001)
	assert.Equal(t, time.Second+time.Microsecond, d)
}

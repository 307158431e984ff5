package jmpfile

import (
	"math"
	"time"

	"github.com/BreakOnExecute/jmpreader/pkg/jmptable"
)

// epoch is the origin for every temporal double in a JMP 11 file.
var epoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// temporalKind classifies a format-type code into one of the four
// temporal buckets, or nonTemporal if the column is ordinary numeric data.
type temporalKind uint8

const (
	nonTemporal temporalKind = iota
	dateTimeKind
	timeOnlyKind
	dateOnlyKind
	durationKind
)

var (
	dateTimeFormats = map[byte]bool{
		0x69: true, 0x6A: true, 0x73: true, 0x74: true, 0x7D: true, 0x7E: true,
		0x77: true, 0x78: true, 0x86: true, 0x87: true, 0x7B: true, 0x7C: true,
		0x80: true, 0x81: true, 0x89: true, 0x8A: true,
	}
	timeOnlyFormats = map[byte]bool{0x79: true, 0x82: true}
	dateOnlyFormats = map[byte]bool{
		0x65: true, 0x6E: true, 0x6F: true, 0x8B: true, 0x70: true, 0x71: true,
		0x72: true, 0x7A: true, 0x75: true, 0x76: true, 0x7F: true, 0x66: true,
		0x67: true, 0x88: true,
	}
	durationFormats = map[byte]bool{0x6C: true, 0x6D: true, 0x83: true, 0x84: true, 0x85: true}
)

// classifyFormat determines whether, and how, a format-type code marks a
// numeric column as temporal.
func classifyFormat(formatType byte) temporalKind {
	switch {
	case dateTimeFormats[formatType]:
		return dateTimeKind
	case timeOnlyFormats[formatType]:
		return timeOnlyKind
	case dateOnlyFormats[formatType]:
		return dateOnlyKind
	case durationFormats[formatType]:
		return durationKind
	default:
		return nonTemporal
	}
}

// columnType maps a temporalKind (plus the fallback "it's just a number")
// to the Column's logical type.
func (k temporalKind) columnType() jmptable.ColumnType {
	switch k {
	case dateTimeKind:
		return jmptable.DateTime
	case timeOnlyKind:
		return jmptable.Time
	case dateOnlyKind:
		return jmptable.Date
	case durationKind:
		return jmptable.Duration
	default:
		return jmptable.Number
	}
}

// secondsToDuration converts a signed seconds count to a time.Duration
// without losing sub-second precision to float64 rounding at large
// magnitudes: the whole-second part is converted as an integer and only
// the fractional remainder goes through floating point.
func secondsToDuration(s float64) time.Duration {
	whole := math.Trunc(s)
	frac := s - whole

	return time.Duration(whole)*time.Second + time.Duration(math.Round(frac*float64(time.Second)))
}

// mapTemporal converts one stored double into a Cell, per the temporal
// kind the column's format type declared. NaN maps to Missing for every
// temporal kind.
func mapTemporal(kind temporalKind, value float64) jmptable.Cell {
	if math.IsNaN(value) {
		return jmptable.MissingCell()
	}

	dur := secondsToDuration(value)

	switch kind {
	case durationKind:
		return jmptable.DurationCell(dur)
	case dateOnlyKind:
		t := epoch.Add(dur)
		return jmptable.DateCell(jmptable.CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()})
	case timeOnlyKind:
		t := epoch.Add(dur)
		return jmptable.TimeCell(jmptable.TimeOfDay{
			Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), Nanosecond: t.Nanosecond(),
		})
	default: // dateTimeKind
		return jmptable.DateTimeCell(epoch.Add(dur))
	}
}

package ass

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// largest value the H:MM:SS.CC grammar can hold
const MaxTime = 10*time.Hour - 10*time.Millisecond

// H:MM:SS.CC with centiseconds truncated
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d > MaxTime {
		d = MaxTime
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}

// ParseTime reads H:MM:SS.CC. A fraction of any length is accepted and
// interpreted as a decimal part of a second.
func ParseTime(ts string) (time.Duration, error) {
	ts = strings.TrimSpace(ts)
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, ts)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, ts)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, ts)
	}

	secPart, fracPart, _ := strings.Cut(parts[2], ".")
	seconds, err := strconv.Atoi(secPart)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, ts)
	}

	var frac time.Duration
	if fracPart != "" {
		f, err := strconv.ParseFloat("0."+fracPart, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, ts)
		}
		frac = time.Duration(f*1000+0.5) * time.Millisecond
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		frac, nil
}

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseDurationFlexible reads a timeout or TTL value as it arrives from
// viper. Strings take time.ParseDuration syntax ("5s", "2m") or bare seconds
// ("120"); numbers are seconds. Empty strings and unsupported types yield
// def with no error. Unparseable or non-positive values yield def and an
// error naming the raw value.
func parseDurationFlexible(raw any, def time.Duration) (time.Duration, error) {
	var d time.Duration
	switch t := raw.(type) {
	case time.Duration:
		d = t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return def, nil
		}
		parsed, err := time.ParseDuration(s)
		if err != nil {
			n, nerr := strconv.ParseInt(s, 10, 64)
			if nerr != nil {
				return def, fmt.Errorf("cannot parse duration %q", s)
			}
			parsed = time.Duration(n) * time.Second
		}
		d = parsed
	case int:
		d = time.Duration(t) * time.Second
	case int32:
		d = time.Duration(t) * time.Second
	case int64:
		d = time.Duration(t) * time.Second
	case float64:
		d = time.Duration(t * float64(time.Second))
	default:
		return def, nil
	}
	if d <= 0 {
		return def, fmt.Errorf("duration must be > 0, got %v", raw)
	}
	return d, nil
}

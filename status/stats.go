package status

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Frame loop metric names
const (
	KeyDebug   = "debug"
	KeyObjects = "obj"
	KeyStatic  = "static"
	KeyActive  = "active"
	KeyFPS     = "fps"
	KeyUPS     = "ups"
	KeyTime    = "time"
	KeyElapsed = "elps"
	KeyScene   = "scene"
)

// statsOrder is the display order of the stats line
var statsOrder = []string{KeyScene, KeyDebug, KeyObjects, KeyStatic, KeyActive, KeyFPS, KeyUPS, KeyTime, KeyElapsed}

// StatsEntries builds the ordered "N:name" map consumed by FormatStats
// The game time is rendered as a duration, other values are copied as is
func StatsEntries(r *Registry) map[string]any {
	values := r.Values()
	entries := make(map[string]any, len(statsOrder))
	for i, key := range statsOrder {
		v, ok := values[key]
		if !ok {
			continue
		}
		if key == KeyTime {
			if ms, ok := v.(int64); ok {
				v = FormatDuration(ms, false)
			}
		}
		entries[fmt.Sprintf("%d:%s", i, key)] = v
	}
	return entries
}

// StatsLine formats the registry as "[ debug:0 | obj:   12 | ... ]"
func StatsLine(r *Registry) string {
	return FormatStats(StatsEntries(r), "[ ", " ]", " | ")
}

// FormatStats joins entries sorted by key, printing the key after its first ':'
// Floats use %04.2f and integers %5d
func FormatStats(entries map[string]any, start, end, delimiter string) string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(start)
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(delimiter)
		}
		name := k[strings.IndexByte(k, ':')+1:]
		sb.WriteString(name)
		sb.WriteByte(':')
		sb.WriteString(formatValue(entries[k]))
	}
	sb.WriteString(end)
	return sb.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64, float32:
		return fmt.Sprintf("%04.2f", x)
	case int, int32, int64:
		return fmt.Sprintf("%5d", x)
	default:
		return fmt.Sprint(x)
	}
}

// FormatDuration renders ms as "hh:mm:ss", or "D d - hh:mm:ss" past one day
// withMS appends ".SSS"
func FormatDuration(ms int64, withMS bool) string {
	d := time.Duration(ms) * time.Millisecond
	days := int64(d / (24 * time.Hour))
	hours := int64(d/time.Hour) - days*24
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60
	millis := ms % 1000

	if days > 0 {
		if withMS {
			return fmt.Sprintf("%d d - %02d:%02d:%02d.%03d", days, hours, minutes, seconds, millis)
		}
		return fmt.Sprintf("%d d - %02d:%02d:%02d", days, hours, minutes, seconds)
	}
	if withMS {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

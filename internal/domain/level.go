package domain

import "strings"

// Level is the severity a line was classified with
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelError    Level = "ERROR"
	LevelWarning  Level = "WARNING"
)

// Levels lists every level in report order (most severe first)
var Levels = []Level{LevelCritical, LevelError, LevelWarning}

// Priority returns the priority of a level (higher = more severe)
func (l Level) Priority() int {
	switch l {
	case LevelWarning:
		return 1
	case LevelError:
		return 2
	case LevelCritical:
		return 3
	default:
		return 0
	}
}

func (l Level) String() string { return string(l) }

// ParseLevel converts a string to Level, ignoring case
func ParseLevel(s string) (Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return LevelCritical, true
	case "ERROR":
		return LevelError, true
	case "WARNING":
		return LevelWarning, true
	default:
		return "", false
	}
}

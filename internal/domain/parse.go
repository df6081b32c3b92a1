package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrBadTimeFormat  = errors.New("expected HH:MM")
	ErrTimeOutOfRange = errors.New("time out of range")
)

var hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ParseReminderTime validates a reminder time like "09:30" and returns it
// normalized. Pattern mismatches and out-of-range values are distinct errors
// so callers can word rejections accordingly.
func ParseReminderTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !hhmmRe.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrBadTimeFormat, s)
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil || h < 0 || h > 23 {
		return "", fmt.Errorf("%w: hour %s", ErrTimeOutOfRange, s[:2])
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: minute %s", ErrTimeOutOfRange, s[3:])
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

// Package schedule resolves which style a terminal should be playing at a
// given wall-clock time.
package schedule

import "github.com/auralis-io/auralis/internal/model"

// Resolve picks the schedule entry in effect for terminalID at now, a
// zero-padded "HH:MM" string. Entries scoped to the terminal win over global
// entries; within a scope the first match in entry order wins. Returns nil
// when no entry matches, in which case the caller keeps its current style.
//
// Windows are same-day and inclusive on both ends. The fixed-width format
// makes plain string comparison correct, so no time parsing happens here.
func Resolve(entries []model.ScheduleEntry, terminalID int, now string) *model.ScheduleEntry {
	if !ValidClock(now) {
		return nil
	}
	for i := range entries {
		e := &entries[i]
		if e.TerminalID == nil || *e.TerminalID != terminalID {
			continue
		}
		if inWindow(e, now) {
			return e
		}
	}
	for i := range entries {
		e := &entries[i]
		if e.TerminalID != nil {
			continue
		}
		if inWindow(e, now) {
			return e
		}
	}
	return nil
}

func inWindow(e *model.ScheduleEntry, now string) bool {
	return e.StartTime <= now && now <= e.EndTime
}

// ValidClock reports whether s is a zero-padded "HH:MM" string.
func ValidClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	hh := int(s[0]-'0')*10 + int(s[1]-'0')
	mm := int(s[3]-'0')*10 + int(s[4]-'0')
	return hh < 24 && mm < 60
}

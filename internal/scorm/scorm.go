// Package scorm translates between the platform's numeric progress model and
// the SCORM 1.2 CMI vocabulary: HHHH:MM:SS session times, 0-100 scores and the
// five-state lesson status.
package scorm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type LessonStatus string

const (
	StatusNotAttempted LessonStatus = "not attempted"
	StatusIncomplete   LessonStatus = "incomplete"
	StatusCompleted    LessonStatus = "completed"
	StatusPassed       LessonStatus = "passed"
	StatusFailed       LessonStatus = "failed"
)

// DefaultPassingScore is the quiz threshold used when a course does not
// configure its own.
const DefaultPassingScore = 80.0

// FormatDuration renders a second count as a CMI timespan (HHHH:MM:SS).
// Negative input clamps to zero, fractional seconds are truncated. Hours are
// padded to 4 digits but not capped, so multi-year durations never wrap.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	return fmt.Sprintf("%04d:%02d:%02d", hours, minutes, secs)
}

// ParseDuration converts a CMI timespan back to whole seconds. Malformed input
// never errors: anything other than three colon-separated numeric fields with
// minutes and seconds below 60 and no negative part yields 0, which callers
// treat as "unparsable/absent" rather than a recorded zero duration.
func ParseDuration(text string) int {
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return 0
	}

	hours, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil || hours < 0 {
		return 0
	}

	minutes, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || minutes < 0 || minutes >= 60 {
		return 0
	}

	// seconds may carry a fractional part
	seconds, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0
	}

	return int(hours)*3600 + int(minutes)*60 + int(seconds)
}

// AddDurations accumulates two CMI timespans into one, parsing each operand
// independently so one malformed side degrades to zero instead of poisoning
// the running total.
func AddDurations(a, b string) string {
	return FormatDuration(float64(ParseDuration(a) + ParseDuration(b)))
}

// DeriveLessonStatus maps progress and an optional quiz score onto the
// five-state vocabulary. A supplied quiz score takes priority over the
// 100%-progress check: a learner who watched everything but failed the quiz
// is failed, not completed. Zero progress is always "not attempted".
func DeriveLessonStatus(progressPercent float64, quizScore *float64, passingScore float64) LessonStatus {
	if progressPercent <= 0 {
		return StatusNotAttempted
	}
	if quizScore != nil {
		if *quizScore >= passingScore {
			return StatusPassed
		}
		return StatusFailed
	}
	if progressPercent >= 100 {
		return StatusCompleted
	}
	return StatusIncomplete
}

// StatusFromProgress derives the course-level status, which never considers
// quiz scores.
func StatusFromProgress(progressPercent float64) LessonStatus {
	return DeriveLessonStatus(progressPercent, nil, DefaultPassingScore)
}

// ScoreFromCounts converts answer counts to a 0-100 score rounded to two
// decimal places. The correct count is clamped into [0, total] first and a
// non-positive total scores 0.
func ScoreFromCounts(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	if correct < 0 {
		correct = 0
	}
	if correct > total {
		correct = total
	}
	score := float64(correct) / float64(total) * 100
	return math.Round(score*100) / 100
}

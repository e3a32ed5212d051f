package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/profile"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"
)

var (
	ErrEmptyBackup   = errors.New("empty backup")
	ErrInvalidBackup = errors.New("invalid backup")
)

const (
	msgEmptyBackup   = "Paste backup JSON first."
	msgInvalidBackup = "Invalid JSON. Please check and try again."
	msgImported      = "Data imported successfully."
)

const (
	PartProfile      = "profile"
	PartWorkouts     = "workouts"
	PartGoals        = "goals"
	PartAchievements = "achievements"
)

// Document is the exported backup. Field order matches the exported JSON.
// Profile is null until a profile has been saved.
type Document struct {
	Profile      *profile.Profile   `json:"profile"`
	Workouts     []workouts.Workout `json:"workouts"`
	Goals        []goals.Goal       `json:"goals"`
	Achievements []string           `json:"achievements"`
}

// parsed holds the parts present in an import; nil means the part is left as stored.
type parsed struct {
	profile      *profile.Profile
	workouts     []workouts.Workout
	goals        []goals.Goal
	achievements []string
	parts        []string
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// parse decodes every part before anything is written, so a malformed backup changes nothing.
// A profile is taken when present and not null; lists are taken only when they are arrays.
func parse(text string) (*parsed, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyBackup
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: document is null", ErrInvalidBackup)
	}

	p := &parsed{}
	if value, ok := raw[PartProfile]; ok && !isNull(value) {
		var prof profile.Profile
		if err := json.Unmarshal(value, &prof); err != nil {
			return nil, fmt.Errorf("%w: profile: %w", ErrInvalidBackup, err)
		}
		p.profile = &prof
		p.parts = append(p.parts, PartProfile)
	}
	if value, ok := raw[PartWorkouts]; ok && isArray(value) {
		p.workouts = []workouts.Workout{}
		if err := json.Unmarshal(value, &p.workouts); err != nil {
			return nil, fmt.Errorf("%w: workouts: %w", ErrInvalidBackup, err)
		}
		p.parts = append(p.parts, PartWorkouts)
	}
	if value, ok := raw[PartGoals]; ok && isArray(value) {
		p.goals = []goals.Goal{}
		if err := json.Unmarshal(value, &p.goals); err != nil {
			return nil, fmt.Errorf("%w: goals: %w", ErrInvalidBackup, err)
		}
		p.parts = append(p.parts, PartGoals)
	}
	if value, ok := raw[PartAchievements]; ok && isArray(value) {
		p.achievements = []string{}
		if err := json.Unmarshal(value, &p.achievements); err != nil {
			return nil, fmt.Errorf("%w: achievements: %w", ErrInvalidBackup, err)
		}
		p.parts = append(p.parts, PartAchievements)
	}

	return p, nil
}

// UserMessage maps an import error to the message shown to the user, if it has one.
func UserMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrEmptyBackup):
		return msgEmptyBackup, true
	case errors.Is(err, ErrInvalidBackup):
		return msgInvalidBackup, true
	default:
		return "", false
	}
}

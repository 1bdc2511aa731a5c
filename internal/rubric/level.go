package rubric

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Level is a maturity level on the assessment scale. The numeric value is the score.
type Level int

const (
	LevelInvalid      Level = 0
	LevelInsufficient Level = 1
	LevelBeginning    Level = 2
	LevelDeveloping   Level = 3
	LevelInnovative   Level = 4
	LevelOptimal      Level = 5
)

var levelNames = map[Level]string{
	LevelInsufficient: "Insufficient",
	LevelBeginning:    "Beginning",
	LevelDeveloping:   "Developing",
	LevelInnovative:   "Innovative",
	LevelOptimal:      "Optimal",
}

var titleCaser = cases.Title(language.English)

// Levels returns every valid level in ascending order.
func Levels() []Level {
	return []Level{LevelInsufficient, LevelBeginning, LevelDeveloping, LevelInnovative, LevelOptimal}
}

// String returns the display label for the level.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "Unknown"
}

// Score maps the level to its integer score.
func (l Level) Score() int {
	if !l.Valid() {
		return 0
	}
	return int(l)
}

// Valid reports whether l is one of the five rubric levels.
func (l Level) Valid() bool {
	return l >= LevelInsufficient && l <= LevelOptimal
}

// Next returns the following level, wrapping from Optimal back to Insufficient.
func (l Level) Next() Level {
	if !l.Valid() || l == LevelOptimal {
		return LevelInsufficient
	}
	return l + 1
}

// Prev returns the preceding level, wrapping from Insufficient to Optimal.
func (l Level) Prev() Level {
	if !l.Valid() || l == LevelInsufficient {
		return LevelOptimal
	}
	return l - 1
}

// LevelFromScore returns the level whose score is exactly score.
func LevelFromScore(score int) (Level, bool) {
	l := Level(score)
	return l, l.Valid()
}

// ParseLevel resolves a level label such as "optimal" or "Optimal".
func ParseLevel(s string) (Level, bool) {
	name := titleCaser.String(strings.TrimSpace(s))
	for l, label := range levelNames {
		if label == name {
			return l, true
		}
	}
	return LevelInvalid, false
}

// MarshalYAML writes the level as its label.
func (l Level) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML accepts either a label or a numeric score.
func (l *Level) UnmarshalYAML(node *yaml.Node) error {
	var label string
	if err := node.Decode(&label); err != nil {
		return err
	}
	if parsed, ok := ParseLevel(label); ok {
		*l = parsed
		return nil
	}
	var score int
	if err := node.Decode(&score); err == nil {
		if parsed, ok := LevelFromScore(score); ok {
			*l = parsed
			return nil
		}
	}
	return fmt.Errorf("unknown assessment level %q", label)
}

// MarshalText writes the level as its label (used by encoding/json).
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText parses a level label.
func (l *Level) UnmarshalText(b []byte) error {
	parsed, ok := ParseLevel(string(b))
	if !ok {
		return fmt.Errorf("unknown assessment level %q", string(b))
	}
	*l = parsed
	return nil
}

// Package scoring aggregates question scores into subsection, section and overall
// figures. Every function here is pure.
package scoring

import (
	"math"

	"kma/internal/rubric"
)

// Level thresholds for bucketing a fractional average into a label.
const (
	OptimalThreshold    = 4.5
	InnovativeThreshold = 3.5
	DevelopingThreshold = 2.5
	BeginningThreshold  = 1.5
)

// Round2 rounds to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// RoundedScore is the whole-number score shown next to an average.
func RoundedScore(avg float64) int {
	return int(math.Round(avg))
}

// MapScoreToLevel buckets an average into the level it represents.
func MapScoreToLevel(score float64) rubric.Level {
	switch {
	case score >= OptimalThreshold:
		return rubric.LevelOptimal
	case score >= InnovativeThreshold:
		return rubric.LevelInnovative
	case score >= DevelopingThreshold:
		return rubric.LevelDeveloping
	case score >= BeginningThreshold:
		return rubric.LevelBeginning
	default:
		return rubric.LevelInsufficient
	}
}

// MapLevelToScore returns the integer score of a level.
func MapLevelToScore(l rubric.Level) int {
	return l.Score()
}

func mean(questions []rubric.Question) float64 {
	sum, n := 0, 0
	for _, q := range questions {
		if q.Header {
			continue
		}
		sum += q.Score
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// SectionAverage is the rounded mean score of the non-header questions, or 0 when
// there are none.
func SectionAverage(questions []rubric.Question) float64 {
	return Round2(mean(questions))
}

// subsectionRun returns the questions strictly between headerIndex and the next header.
func subsectionRun(questions []rubric.Question, headerIndex int) []rubric.Question {
	if headerIndex < 0 || headerIndex >= len(questions) {
		return nil
	}
	end := len(questions)
	for i := headerIndex + 1; i < len(questions); i++ {
		if questions[i].Header {
			end = i
			break
		}
	}
	return questions[headerIndex+1 : end]
}

// SubsectionAverage averages the run of questions following the header at headerIndex.
func SubsectionAverage(questions []rubric.Question, headerIndex int) float64 {
	return Round2(mean(subsectionRun(questions, headerIndex)))
}

// Overall is the cross-section result.
type Overall struct {
	Score   int          `json:"score" yaml:"score"`
	Average float64      `json:"average" yaml:"average"`
	Level   rubric.Level `json:"level" yaml:"level"`
}

// ComputeOverall averages the section averages. Score is floored and Average rounded,
// both from the same unrounded mean.
func ComputeOverall(sections []rubric.Section) Overall {
	if len(sections) == 0 {
		return Overall{Level: rubric.LevelInsufficient}
	}
	total := 0.0
	for _, s := range sections {
		total += s.AverageScore
	}
	m := total / float64(len(sections))
	return Overall{
		Score:   int(math.Floor(m)),
		Average: Round2(m),
		Level:   MapScoreToLevel(m),
	}
}

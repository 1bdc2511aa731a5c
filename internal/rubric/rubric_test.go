package rubric

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInitialAssessment_Shape(t *testing.T) {
	data := LoadInitialAssessment()

	require.Len(t, data.Sections, 6)
	assert.Equal(t, DefaultOrganization, data.Organization)

	wantIDs := []string{
		"strategy-governance",
		"culture-people",
		"processes-content",
		"technology-infrastructure",
		"measurement-improvement",
		"return-on-investment",
	}
	wantAverages := []float64{4.71, 2.63, 3.33, 3.44, 2.89, 3.00}
	for i, s := range data.Sections {
		assert.Equal(t, wantIDs[i], s.ID)
		assert.Equal(t, wantAverages[i], s.AverageScore, "section %s", s.ID)
		assert.Equal(t, "#4a90e2", s.BackgroundColor)
	}

	sg := data.Section("strategy-governance")
	require.NotNil(t, sg)
	assert.Equal(t, "Strategy & Governance", sg.Title)
	assert.Len(t, sg.Questions, 13)
	assert.Equal(t, 4, sg.HeaderCount())
	assert.Len(t, sg.Scorable(), 9)
}

func TestLoadInitialAssessment_ScoresMirrorLevels(t *testing.T) {
	data := LoadInitialAssessment()
	for _, s := range data.Sections {
		for _, q := range s.Questions {
			if q.Score != q.Level.Score() {
				t.Errorf("%s/%s: score %d does not match level %s", s.ID, q.ID, q.Score, q.Level)
			}
		}
	}
}

func TestLoadInitialAssessment_ReturnsIndependentCopies(t *testing.T) {
	a := LoadInitialAssessment()
	a.Sections[0].Questions[1].SetLevel(LevelInsufficient)
	a.Sections[0].AverageScore = 1

	b := LoadInitialAssessment()
	assert.Equal(t, LevelDeveloping, b.Sections[0].Questions[1].Level)
	assert.Equal(t, 4.71, b.Sections[0].AverageScore)
}

func TestHeaderIDsFollowConvention(t *testing.T) {
	for _, s := range LoadInitialAssessment().Sections {
		for _, q := range s.Questions {
			if q.Header != strings.HasSuffix(q.ID, "-header") {
				t.Errorf("%s/%s: header flag %v disagrees with id", s.ID, q.ID, q.Header)
			}
		}
	}
}

func TestSubsections(t *testing.T) {
	data := LoadInitialAssessment()

	subs := data.Section("strategy-governance").Subsections()
	require.Len(t, subs, 4)
	assert.Equal(t, "Vision and Strategy", subs[0].Header.Text)
	assert.Equal(t, 0, subs[0].HeaderIndex)
	assert.Len(t, subs[0].Questions, 3)
	assert.Equal(t, "Leadership Support", subs[1].Header.Text)
	assert.Equal(t, 4, subs[1].HeaderIndex)
	assert.Len(t, subs[1].Questions, 2)

	roi := data.Section("return-on-investment").Subsections()
	require.Len(t, roi, 1)
	assert.Nil(t, roi[0].Header)
	assert.Equal(t, -1, roi[0].HeaderIndex)
	assert.Len(t, roi[0].Questions, 1)
}

func TestSubsections_EmptyHeaderRun(t *testing.T) {
	s := Section{Questions: []Question{
		{ID: "a-header", Header: true},
		{ID: "b-header", Header: true},
		{ID: "q1"},
	}}
	subs := s.Subsections()
	require.Len(t, subs, 2)
	assert.Empty(t, subs[0].Questions)
	assert.Len(t, subs[1].Questions, 1)
}

func TestOrganizations(t *testing.T) {
	assert.Equal(t, []string{"OD1", "OD2", "OD3", "OD4", "OD5"}, Organizations())
	assert.True(t, ValidOrganization("OD5"))
	assert.False(t, ValidOrganization("OD6"))
	assert.False(t, ValidOrganization(""))

	orgs := Organizations()
	orgs[0] = "mutated"
	assert.True(t, ValidOrganization("OD1"))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"Optimal":       LevelOptimal,
		"optimal":       LevelOptimal,
		"  INNOVATIVE ": LevelInnovative,
		"developing":    LevelDeveloping,
		"Beginning":     LevelBeginning,
		"insufficient":  LevelInsufficient,
	}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseLevel("excellent"); ok {
		t.Error("expected unknown label to be rejected")
	}
}

func TestLevelScoreAndCycle(t *testing.T) {
	for i, l := range Levels() {
		assert.Equal(t, i+1, l.Score())
		back, ok := LevelFromScore(l.Score())
		assert.True(t, ok)
		assert.Equal(t, l, back)
	}
	assert.Equal(t, 0, LevelInvalid.Score())
	assert.Equal(t, LevelInsufficient, LevelOptimal.Next())
	assert.Equal(t, LevelOptimal, LevelInsufficient.Prev())
	assert.Equal(t, LevelInnovative, LevelDeveloping.Next())
	assert.Equal(t, "Unknown", Level(9).String())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no sections", "version: 1\nsections: []\n", "no sections"},
		{"duplicate question", `version: 1
sections:
  - id: s
    title: S
    questions:
      - {id: q, level: Optimal, text: "a"}
      - {id: q, level: Optimal, text: "b"}
`, "duplicate question id"},
		{"bad level", `version: 1
sections:
  - id: s
    title: S
    questions:
      - {id: q, level: Excellent, text: "a"}
`, "unknown assessment level"},
		{"unknown field", `version: 1
sections:
  - id: s
    title: S
    colour: red
    questions:
      - {id: q, level: Optimal, text: "a"}
`, "colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_NumericLevel(t *testing.T) {
	c, err := Load(strings.NewReader(`version: 1
sections:
  - id: s
    title: S
    questions:
      - {id: q, level: 4, text: "a"}
`))
	require.NoError(t, err)
	q := c.Sections[0].Questions[0]
	assert.Equal(t, LevelInnovative, q.Level)
	assert.Equal(t, 4, q.Score)
}

func TestAssessmentDataJSON(t *testing.T) {
	data := LoadInitialAssessment()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	s := string(raw)
	assert.Contains(t, s, `"organization":"OD2"`)
	assert.Contains(t, s, `"level":"Developing","score":3,"isHeader":false`)
	assert.Contains(t, s, `"averageScore":4.71`)
}

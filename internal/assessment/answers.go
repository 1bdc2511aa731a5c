package assessment

import (
	"fmt"
	"io"
	"os"
	"sort"

	"kma/internal/rubric"

	"gopkg.in/yaml.v3"
)

// Answers is a batch of level selections read from a file:
//
//	organization: OD3
//	answers:
//	  strategy-governance:
//	    clearly-defined-vision: Optimal
//	    dedicated-lead: 4
type Answers struct {
	Organization string                             `yaml:"organization"`
	Answers      map[string]map[string]rubric.Level `yaml:"answers"`
}

// LoadAnswersFile reads answers from path.
func LoadAnswersFile(path string) (*Answers, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open answers: %w", err)
	}
	defer f.Close()
	return LoadAnswers(f)
}

// LoadAnswers decodes answers from r.
func LoadAnswers(r io.Reader) (*Answers, error) {
	var a Answers
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse answers: %w", err)
	}
	return &a, nil
}

// Apply replays the answers through the form in section order. Unlike interactive
// edits, a reference the form rejects is reported as an error; the answers before
// it stay applied.
func (a *Answers) Apply(f *Form) error {
	if a.Organization != "" && !f.SetOrganization(a.Organization) {
		return fmt.Errorf("unknown organization %q (valid: %v)", a.Organization, rubric.Organizations())
	}

	sectionIDs := make([]string, 0, len(a.Answers))
	for id := range a.Answers {
		sectionIDs = append(sectionIDs, id)
	}
	sort.Strings(sectionIDs)

	for _, sid := range sectionIDs {
		levels := a.Answers[sid]
		qids := make([]string, 0, len(levels))
		for id := range levels {
			qids = append(qids, id)
		}
		sort.Strings(qids)
		for _, qid := range qids {
			if !f.ApplyLevelChange(sid, qid, levels[qid]) {
				return fmt.Errorf("cannot set %s/%s to %s: no such question or question is a header", sid, qid, levels[qid])
			}
		}
	}
	return nil
}

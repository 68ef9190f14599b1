package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/alama/core"
)

type Subject string

// Subjects
const (
	// Sciences
	Math      Subject = "math"
	Physics   Subject = "physics"
	Chemistry Subject = "chemistry"
	Biology   Subject = "biology"

	// General
	English Subject = "english"
	Science Subject = "science"
	Social  Subject = "social"
)

var (
	ScienceCurriculum = Curriculum{
		Name:     "science",
		Subjects: []Subject{Math, Physics, Chemistry, Biology},
		MinForm:  1,
		MaxForm:  4,
		MinAge:   10,
		MaxAge:   25,
	}
	GeneralCurriculum = Curriculum{
		Name:     "general",
		Subjects: []Subject{Math, English, Science, Social},
		MinForm:  1,
		MaxForm:  4,
	}

	Curricula = []Curriculum{ScienceCurriculum, GeneralCurriculum}

	errUnknownCurriculum = errors.New("unknown curriculum")
)

// Curriculum holds the closed sets a school works with: the subjects scored per form,
// the form levels a student goes through and the accepted age range.
type Curriculum struct {
	Name     string    `json:"name"`
	Subjects []Subject `json:"subjects"`
	MinForm  int       `json:"min_form"`
	MaxForm  int       `json:"max_form"`
	MinAge   int       `json:"min_age"`
	MaxAge   int       `json:"max_age"` // 0: no upper bound
}

// CurriculumByName returns one of the Curricula.
func CurriculumByName(name string) (Curriculum, error) {
	name = core.CleanString(name, true /* lower */)
	for _, c := range Curricula {
		if c.Name == name {
			return c, nil
		}
	}
	return Curriculum{}, errors.Wrapf(errUnknownCurriculum, "%q", name)
}

func (c Curriculum) Forms() []int {
	forms := make([]int, 0, c.MaxForm-c.MinForm+1)
	for f := c.MinForm; f <= c.MaxForm; f++ {
		forms = append(forms, f)
	}
	return forms
}

func (c Curriculum) IsForm(form int) bool {
	return form >= c.MinForm && form <= c.MaxForm
}

func (c Curriculum) AllowsAge(age int) bool {
	if age < c.MinAge {
		return false
	}
	return c.MaxAge == 0 || age <= c.MaxAge
}

func (c Curriculum) HasSubject(s Subject) bool {
	for _, sub := range c.Subjects {
		if sub == s {
			return true
		}
	}
	return false
}

// IsCompleteRegistration reports whether all the registration fields are present and within the curriculum's domains.
func (c Curriculum) IsCompleteRegistration(ns NewStudent) bool {
	return core.CleanString(ns.Name) != "" &&
		NormalizeID(ns.ID) != "" &&
		IsGender(ns.Gender) &&
		ns.Age != nil && c.AllowsAge(*ns.Age) &&
		c.IsForm(ns.Form)
}

type ctxKey int

const curriculumKey ctxKey = iota

func withCurriculum(ctx context.Context, c Curriculum) context.Context {
	return context.WithValue(ctx, curriculumKey, c)
}

func curriculumFrom(ctx context.Context) (Curriculum, bool) {
	c, ok := ctx.Value(curriculumKey).(Curriculum)
	return c, ok
}

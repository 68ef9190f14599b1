package student

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/alama/core"
)

// Genders
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

var Genders = []string{GenderMale, GenderFemale}

func IsGender(g string) bool {
	g = core.CleanString(g, true /* lower */)
	for _, gender := range Genders {
		if g == gender {
			return true
		}
	}
	return false
}

// Scores maps each subject of a curriculum to its score, in [0, 100].
type Scores map[Subject]float64

// Subjects returns the scored subjects sorted by name.
func (s Scores) Subjects() []Subject {
	subjects := make([]Subject, 0, len(s))
	for sub := range s {
		subjects = append(subjects, sub)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })
	return subjects
}

func (s Scores) clone() Scores {
	if s == nil {
		return nil
	}
	c := make(Scores, len(s))
	for sub, v := range s {
		c[sub] = v
	}
	return c
}

type PerformanceRecord struct {
	Form     int    `json:"form"`
	Subjects Scores `json:"subjects"`
}

type Student struct {
	ID          string              `json:"id"` // canonical: see NormalizeID
	Name        string              `json:"name"`
	Gender      string              `json:"gender"`
	Age         int                 `json:"age"`
	Form        int                 `json:"form"`
	Performance []PerformanceRecord `json:"performance"` // at most one record per form
}

// Clone returns a deep copy of the student.
func (s Student) Clone() Student {
	c := s
	c.Performance = make([]PerformanceRecord, len(s.Performance))
	for i, rec := range s.Performance {
		c.Performance[i] = PerformanceRecord{Form: rec.Form, Subjects: rec.Subjects.clone()}
	}
	return c
}

// UpsertPerformance replaces the record of rec.Form if there is one, or appends rec.
// It reports whether a record was replaced.
func (s *Student) UpsertPerformance(rec PerformanceRecord) bool {
	for i := range s.Performance {
		if s.Performance[i].Form == rec.Form {
			s.Performance[i].Subjects = rec.Subjects
			return true
		}
	}
	s.Performance = append(s.Performance, rec)
	return false
}

// PerformanceByForm returns the student's record for the form, if any.
func (s Student) PerformanceByForm(form int) (PerformanceRecord, bool) {
	for _, rec := range s.Performance {
		if rec.Form == form {
			return rec, true
		}
	}
	return PerformanceRecord{}, false
}

// Summary is a roster row.
type Summary struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Gender         string       `json:"gender"`
	Age            int          `json:"age"`
	Form           int          `json:"form"`
	OverallAverage null.Float64 `json:"overall_average"`
}

func (s Student) Summary() Summary {
	avg, ok := s.OverallAverage()
	return Summary{
		ID:             s.ID,
		Name:           s.Name,
		Gender:         s.Gender,
		Age:            s.Age,
		Form:           s.Form,
		OverallAverage: null.NewFloat64(avg, ok),
	}
}

type RecordReport struct {
	Form     int     `json:"form"`
	Subjects Scores  `json:"subjects"`
	Average  float64 `json:"average"`
}

// Report is a student's detail view; records are sorted by form.
type Report struct {
	Summary
	Records []RecordReport `json:"records"`
}

func (s Student) Report() Report {
	records := make([]RecordReport, 0, len(s.Performance))
	for _, rec := range s.Performance {
		records = append(records, RecordReport{
			Form:     rec.Form,
			Subjects: rec.Subjects.clone(),
			Average:  rec.Average(),
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Form < records[j].Form })
	return Report{Summary: s.Summary(), Records: records}
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	ID     string `json:"id" validate:"notblank"`
	Name   string `json:"name" validate:"notblank"`
	Gender string `json:"gender" validate:"notblank,gender"`
	Age    *int   `json:"age" validate:"required,age"`
	Form   int    `json:"form" validate:"form"`
}

func (ns *NewStudent) Validate(ctx context.Context, validate *validator.Validate, c Curriculum) error {
	ns.ID = NormalizeID(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	ns.Gender = core.CleanString(ns.Gender, true /* lower */)
	return validate.StructCtx(withCurriculum(ctx, c), ns)
}

// UpdateStudent defines the information that replaces an existing Student's details.
// Performance records are never affected.
type UpdateStudent struct {
	ID     string `json:"id" validate:"notblank"`
	Name   string `json:"name" validate:"notblank"`
	Gender string `json:"gender" validate:"notblank,gender"`
	Age    *int   `json:"age" validate:"required,age"`
	Form   int    `json:"form" validate:"form"`
}

func (us *UpdateStudent) Validate(ctx context.Context, validate *validator.Validate, c Curriculum) error {
	us.ID = NormalizeID(us.ID)
	us.Name = core.CleanString(us.Name)
	us.Gender = core.CleanString(us.Gender, true /* lower */)
	return validate.StructCtx(withCurriculum(ctx, c), us)
}

// NewPerformance contains the raw scores of one form.
// Subjects values are coerced with ParseScore; see IsValidScore.
type NewPerformance struct {
	Form     int                    `json:"form" validate:"form"`
	Subjects map[string]interface{} `json:"subjects" validate:"required"`
}

// Validate canonicalizes the subject names, which must then be unique.
func (np *NewPerformance) Validate(ctx context.Context, validate *validator.Validate, c Curriculum) error {
	if np.Subjects != nil {
		subjects := make(map[string]interface{}, len(np.Subjects))
		repeated := make(map[string]bool)
		for name, v := range np.Subjects {
			name = core.CleanString(name, true /* lower */)
			if _, ok := subjects[name]; ok {
				repeated[name] = true
			}
			subjects[name] = v
		}
		if len(repeated) > 0 {
			names := make([]string, 0, len(repeated))
			for name := range repeated {
				names = append(names, name)
			}
			sort.Strings(names)
			fldErrs := make([]core.FieldError, len(names))
			for i, name := range names {
				fldErrs[i] = core.FieldError{Field: "subjects." + name, Error: repeatedSubjectText}
			}
			return core.NewValidationError(nil, fldErrs...)
		}
		np.Subjects = subjects
	}
	return validate.StructCtx(withCurriculum(ctx, c), np)
}

// Scores returns the parsed scores of a validated NewPerformance.
func (np NewPerformance) Scores() Scores {
	scores := make(Scores, len(np.Subjects))
	for name, v := range np.Subjects {
		if score, ok := ParseScore(v); ok {
			scores[Subject(name)] = score
		}
	}
	return scores
}

// QueryFilter is applied with an AND operation on its set fields.
type QueryFilter struct {
	Search string // case-insensitive match on one of Student.ID or Student.Name
	Form   *int
}

package student

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

var (
	genderTag  = "gender"
	genderText = "gender must be one of: " + strings.Join(Genders, ", ")

	formTag  = "form"
	formText = "unrecognized form level"

	ageTag  = "age"
	ageText = "age is outside the allowed range"

	scoreTag  = "score"
	scoreText = "score must be a number between 0 and 100"

	subjectTag  = "subject"
	subjectText = "unrecognized subject"

	repeatedSubjectText = "subject is given more than once"

	requiredTag = "required"
)

// InitValidators registers the student validators.
// core.InitValidators must be called first.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(genderTag, genderValidation)
	core.RegisterCustomTranslation(validate, translator, genderTag, genderText)

	_ = validate.RegisterValidationCtx(formTag, formValidation)
	core.RegisterCustomTranslation(validate, translator, formTag, formText)

	_ = validate.RegisterValidationCtx(ageTag, ageValidation)
	core.RegisterCustomTranslation(validate, translator, ageTag, ageText)

	validate.RegisterStructValidationCtx(performanceStructValidation, NewPerformance{})
	core.RegisterCustomTranslation(validate, translator, scoreTag, scoreText)
	core.RegisterCustomTranslation(validate, translator, subjectTag, subjectText)
}

// ParseScore coerces a raw score to a number.
// Numbers, json.Number and numeric strings are accepted; the result must be finite and within [0, 100].
func ParseScore(value interface{}) (float64, bool) {
	var score float64
	switch v := value.(type) {
	case float64:
		score = v
	case float32:
		score = float64(v)
	case int:
		score = float64(v)
	case int32:
		score = float64(v)
	case int64:
		score = float64(v)
	case uint:
		score = float64(v)
	case uint64:
		score = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		score = f
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		score = f
	default:
		return 0, false
	}

	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
		return 0, false
	}
	return score, true
}

// IsValidScore reports whether value coerces to a finite number between 0 and 100 inclusive.
func IsValidScore(value interface{}) bool {
	_, ok := ParseScore(value)
	return ok
}

// Custom Validators

func genderValidation(fl validator.FieldLevel) bool {
	return IsGender(fl.Field().String())
}

// formValidation checks that the form is one of the curriculum's levels.
func formValidation(ctx context.Context, fl validator.FieldLevel) bool {
	c, ok := curriculumFrom(ctx)
	return ok && c.IsForm(int(fl.Field().Int()))
}

func ageValidation(ctx context.Context, fl validator.FieldLevel) bool {
	c, ok := curriculumFrom(ctx)
	return ok && c.AllowsAge(int(fl.Field().Int()))
}

// performanceStructValidation requires a valid score for every subject of the curriculum, and no other subject.
func performanceStructValidation(ctx context.Context, sl validator.StructLevel) {
	np, ok := sl.Current().Interface().(NewPerformance)
	if !ok || np.Subjects == nil {
		return
	}
	c, ok := curriculumFrom(ctx)
	if !ok {
		return
	}

	for _, sub := range c.Subjects {
		fld := "subjects." + string(sub)
		v, ok := np.Subjects[string(sub)]
		if !ok || v == nil {
			sl.ReportError("", fld, "Subjects", requiredTag, "")
			continue
		}
		if !IsValidScore(v) {
			sl.ReportError(v, fld, "Subjects", scoreTag, "")
		}
	}
	for name, v := range np.Subjects {
		if !c.HasSubject(Subject(name)) {
			if v == nil {
				v = ""
			}
			sl.ReportError(v, "subjects."+name, "Subjects", subjectTag, "")
		}
	}
}

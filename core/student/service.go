package student

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrDuplicateID = errors.New("a student with this ID already exists")
	ErrAtMaxLevel  = errors.New("student is already in the final form")
)

type (
	// Repository stores Students in insertion order, keyed by their canonical ID.
	// Every method is atomic.
	Repository interface {
		// CreateStudent appends the student; ErrDuplicateID if the ID is taken.
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudent(ctx context.Context, id string) (Student, error)
		QueryStudents(ctx context.Context) ([]Student, error)
		// UpdateStudent applies update to a copy of the student and saves it in place, unless update fails.
		// On failure, the stored student is returned untouched along with the error.
		// A changed ID must not belong to another student (ErrDuplicateID).
		UpdateStudent(ctx context.Context, id string, update func(*Student) error) (Student, error)
		// DeleteStudents deletes all the students or none; ErrNotFound if one of them does not exist.
		DeleteStudents(ctx context.Context, ids ...string) error
	}

	Service interface {
		Curriculum() Curriculum
		Register(ctx context.Context, ns NewStudent) (Student, error)
		Edit(ctx context.Context, oldID string, us UpdateStudent) (Student, error)
		// Promote moves the student to the next form.
		// ErrAtMaxLevel is returned with the unchanged student if they are already in the final form.
		Promote(ctx context.Context, id string) (Student, error)
		// RecordPerformance saves the scores of one form, replacing any previous record of that form.
		RecordPerformance(ctx context.Context, id string, np NewPerformance) (PerformanceRecord, error)
		Delete(ctx context.Context, ids ...string) error
		GetByID(ctx context.Context, id string) (Student, error)
		Query(ctx context.Context, filter QueryFilter) ([]Student, error)
	}

	service struct {
		repo       Repository
		validate   *validator.Validate
		curriculum Curriculum
		logger     core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate, c Curriculum, logger core.Logger) Service {
	return &service{
		repo:       repo,
		validate:   validate,
		curriculum: c,
		logger:     logger,
	}
}

func (svc *service) Curriculum() Curriculum {
	return svc.curriculum
}

func (svc *service) Register(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(ctx, svc.validate, svc.curriculum); err != nil {
		return Student{}, err
	}

	std, err := svc.repo.CreateStudent(ctx, Student{
		ID:          ns.ID,
		Name:        ns.Name,
		Gender:      ns.Gender,
		Age:         *ns.Age,
		Form:        ns.Form,
		Performance: []PerformanceRecord{},
	})
	if err != nil {
		return Student{}, err
	}
	svc.logger.Info(fmt.Sprintf("student %s registered", std.ID))
	return std, nil
}

func (svc *service) Edit(ctx context.Context, oldID string, us UpdateStudent) (Student, error) {
	if err := us.Validate(ctx, svc.validate, svc.curriculum); err != nil {
		return Student{}, err
	}

	oldID = NormalizeID(oldID)
	std, err := svc.repo.UpdateStudent(ctx, oldID, func(std *Student) error {
		std.ID = us.ID
		std.Name = us.Name
		std.Gender = us.Gender
		std.Age = *us.Age
		std.Form = us.Form
		return nil
	})
	if err != nil {
		return Student{}, err
	}
	svc.logger.Info(fmt.Sprintf("student %s updated", oldID), map[string]interface{}{"id": std.ID})
	return std, nil
}

func (svc *service) Promote(ctx context.Context, id string) (Student, error) {
	maxForm := svc.curriculum.MaxForm
	std, err := svc.repo.UpdateStudent(ctx, NormalizeID(id), func(std *Student) error {
		if std.Form >= maxForm {
			return ErrAtMaxLevel
		}
		std.Form++
		return nil
	})
	if err != nil {
		if errors.Cause(err) == ErrAtMaxLevel {
			return std, err
		}
		return Student{}, err
	}
	svc.logger.Info(fmt.Sprintf("student %s promoted to form %d", std.ID, std.Form))
	return std, nil
}

func (svc *service) RecordPerformance(ctx context.Context, id string, np NewPerformance) (PerformanceRecord, error) {
	id = NormalizeID(id)
	if _, err := svc.repo.GetStudent(ctx, id); err != nil {
		return PerformanceRecord{}, err
	}
	if err := np.Validate(ctx, svc.validate, svc.curriculum); err != nil {
		return PerformanceRecord{}, err
	}

	rec := PerformanceRecord{Form: np.Form, Subjects: np.Scores()}
	var replaced bool
	if _, err := svc.repo.UpdateStudent(ctx, id, func(std *Student) error {
		replaced = std.UpsertPerformance(rec)
		return nil
	}); err != nil {
		return PerformanceRecord{}, err
	}

	action := "recorded"
	if replaced {
		action = "replaced"
	}
	svc.logger.Info(fmt.Sprintf("student %s form %d results %s", id, rec.Form, action))
	return rec, nil
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	canonical := make([]string, len(ids))
	for i, id := range ids {
		canonical[i] = NormalizeID(id)
	}
	if err := svc.repo.DeleteStudents(ctx, canonical...); err != nil {
		return err
	}
	svc.logger.Info(fmt.Sprintf("%d student(s) deleted", len(canonical)), map[string]interface{}{"ids": canonical})
	return nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, NormalizeID(id))
}

func (svc *service) Query(ctx context.Context, filter QueryFilter) ([]Student, error) {
	students, err := svc.repo.QueryStudents(ctx)
	if err != nil {
		return nil, err
	}
	return Search(students, filter), nil
}

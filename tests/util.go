package testutil

import (
	"context"
	"io"
	"log"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/student"
	logsvc "github.com/trezcool/alama/services/logger"
	inmemdb "github.com/trezcool/alama/storage/database/inmem"
)

// NewLogger returns a logger that neither prints nor reports.
func NewLogger() core.Logger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)
	return logger
}

// NewValidator returns a validator with all the app validators registered, along with its translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate, translator
}

func NewValidate() *validator.Validate {
	validate, _ := NewValidator()
	return validate
}

// NewService returns a student service backed by an empty in-memory DB.
func NewService(t *testing.T, c student.Curriculum) (student.Service, student.Repository) {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("NewService() failed: %v", err)
	}
	repo := inmemdb.NewStudentRepository(db)
	return student.NewService(repo, NewValidate(), c, NewLogger()), repo
}

func IntPtr(i int) *int { return &i }

func CreateStudent(t *testing.T, repo student.Repository, id, name string, form int, records ...student.PerformanceRecord) student.Student {
	std := student.Student{
		ID:          student.NormalizeID(id),
		Name:        name,
		Gender:      student.GenderFemale,
		Age:         15,
		Form:        form,
		Performance: records,
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

package inmemdb

import (
	"context"

	"github.com/trezcool/alama/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) CreateStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if repo.db.index(std.ID) >= 0 {
		return student.Student{}, student.ErrDuplicateID
	}
	row := std.Clone()
	repo.db.rows = append(repo.db.rows, &row)
	return row.Clone(), nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.db.index(id); i >= 0 {
		return repo.db.rows[i].Clone(), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryStudents(_ context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	students := make([]student.Student, 0, len(repo.db.rows))
	for _, row := range repo.db.rows {
		students = append(students, row.Clone())
	}
	return students, nil
}

func (repo *studentRepository) UpdateStudent(
	_ context.Context,
	id string,
	update func(*student.Student) error,
) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.db.index(id)
	if i < 0 {
		return student.Student{}, student.ErrNotFound
	}
	orig := repo.db.rows[i]

	// only save a fully updated copy
	std := orig.Clone()
	if err := update(&std); err != nil {
		return orig.Clone(), err
	}
	if std.ID != orig.ID {
		if j := repo.db.index(std.ID); j >= 0 && j != i {
			return orig.Clone(), student.ErrDuplicateID
		}
	}

	repo.db.rows[i] = &std
	return std.Clone(), nil
}

func (repo *studentRepository) DeleteStudents(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		if repo.db.index(id) < 0 {
			return student.ErrNotFound
		}
		drop[id] = true
	}

	rows := make([]*student.Student, 0, len(repo.db.rows))
	for _, row := range repo.db.rows {
		if !drop[row.ID] {
			rows = append(rows, row)
		}
	}
	repo.db.rows = rows
	return nil
}

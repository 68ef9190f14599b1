package inmemdb

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/alama/core/student"
)

func setup(t *testing.T) student.Repository {
	db, err := Open()
	require.NoError(t, err)
	return NewStudentRepository(db)
}

func newStudent(id string, form int) student.Student {
	return student.Student{ID: id, Name: "Student " + id, Gender: student.GenderMale, Age: 14, Form: form}
}

func TestStudentRepository_CreateStudent(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)

	for _, id := range []string{"C3", "A1", "B2"} {
		_, err := repo.CreateStudent(ctx, newStudent(id, 1))
		require.NoError(t, err)
	}
	_, err := repo.CreateStudent(ctx, newStudent("A1", 2))
	assert.Equal(t, student.ErrDuplicateID, err)

	all, err := repo.QueryStudents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"C3", "A1", "B2"}, []string{all[0].ID, all[1].ID, all[2].ID}, "insertion order")
	assert.Equal(t, 1, all[1].Form)
}

func TestStudentRepository_GetStudentReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)

	std := newStudent("A1", 1)
	std.Performance = []student.PerformanceRecord{{Form: 1, Subjects: student.Scores{student.Math: 50}}}
	_, err := repo.CreateStudent(ctx, std)
	require.NoError(t, err)

	// mutating the caller's values must not reach the store
	std.Performance[0].Subjects[student.Math] = 0
	got, err := repo.GetStudent(ctx, "A1")
	require.NoError(t, err)
	got.Name = "changed"
	got.Performance[0].Subjects[student.Math] = 1

	again, err := repo.GetStudent(ctx, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Student A1", again.Name)
	assert.Equal(t, float64(50), again.Performance[0].Subjects[student.Math])

	_, err = repo.GetStudent(ctx, "ZZ")
	assert.Equal(t, student.ErrNotFound, err)
}

func TestStudentRepository_UpdateStudent(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)
	for _, id := range []string{"A1", "B2", "C3"} {
		_, err := repo.CreateStudent(ctx, newStudent(id, 1))
		require.NoError(t, err)
	}
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		id       string
		update   func(*student.Student) error
		wantErr  error
		wantForm int
		wantIDs  []string
	}{
		{
			name:    "not found",
			id:      "ZZ",
			update:  func(s *student.Student) error { return nil },
			wantErr: student.ErrNotFound,
			wantIDs: []string{"A1", "B2", "C3"},
		},
		{
			name: "failed update is not saved",
			id:   "B2",
			update: func(s *student.Student) error {
				s.Form = 4
				return errBoom
			},
			wantErr:  errBoom,
			wantForm: 1,
			wantIDs:  []string{"A1", "B2", "C3"},
		},
		{
			name: "id taken",
			id:   "B2",
			update: func(s *student.Student) error {
				s.ID = "C3"
				s.Form = 3
				return nil
			},
			wantErr:  student.ErrDuplicateID,
			wantForm: 1,
			wantIDs:  []string{"A1", "B2", "C3"},
		},
		{
			name: "in place",
			id:   "B2",
			update: func(s *student.Student) error {
				s.Form = 2
				return nil
			},
			wantForm: 2,
			wantIDs:  []string{"A1", "B2", "C3"},
		},
		{
			name: "new id keeps position",
			id:   "B2",
			update: func(s *student.Student) error {
				s.ID = "B9"
				return nil
			},
			wantForm: 2,
			wantIDs:  []string{"A1", "B9", "C3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.UpdateStudent(ctx, tt.id, tt.update)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.wantForm, got.Form)

			all, err := repo.QueryStudents(ctx)
			require.NoError(t, err)
			ids := make([]string, len(all))
			for i, s := range all {
				ids[i] = s.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStudentRepository_DeleteStudents(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)
	for _, id := range []string{"A1", "B2", "C3", "D4"} {
		_, err := repo.CreateStudent(ctx, newStudent(id, 1))
		require.NoError(t, err)
	}

	assert.Equal(t, student.ErrNotFound, repo.DeleteStudents(ctx, "A1", "ZZ"))
	all, _ := repo.QueryStudents(ctx)
	assert.Len(t, all, 4, "nothing deleted")

	require.NoError(t, repo.DeleteStudents(ctx, "C3", "A1"))
	all, _ = repo.QueryStudents(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "B2", all[0].ID)
	assert.Equal(t, "D4", all[1].ID)

	_, err := repo.GetStudent(ctx, "A1")
	assert.Equal(t, student.ErrNotFound, err)
}

func TestStudentRepository_ConcurrentUpserts(t *testing.T) {
	ctx := context.Background()
	repo := setup(t)
	_, err := repo.CreateStudent(ctx, newStudent("A1", 1))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			form := i%4 + 1
			_, err := repo.UpdateStudent(ctx, "A1", func(s *student.Student) error {
				s.UpsertPerformance(student.PerformanceRecord{Form: form, Subjects: student.Scores{student.Math: float64(i)}})
				return nil
			})
			assert.NoError(t, err, fmt.Sprintf("upsert #%d", i))
		}(i)
	}
	wg.Wait()

	got, err := repo.GetStudent(ctx, "A1")
	require.NoError(t, err)
	assert.Len(t, got.Performance, 4, "one record per form")
}

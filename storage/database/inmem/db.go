package inmemdb

import (
	"sync"

	"github.com/trezcool/alama/core/student"
)

type (
	DB struct {
		student *studentTable
	}

	// studentTable keeps rows in insertion order.
	studentTable struct {
		sync.RWMutex
		rows []*student.Student
	}
)

func Open() (*DB, error) {
	db := &DB{
		student: &studentTable{rows: make([]*student.Student, 0)},
	}
	return db, nil
}

// index returns the position of the row with the canonical id, or -1.
// the caller must hold the lock.
func (t *studentTable) index(id string) int {
	for i, row := range t.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

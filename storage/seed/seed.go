// Package seed replays a YAML roster through the student service.
//
// The roster format:
//
//	students:
//	  - id: A1
//	    name: Amani Kabila
//	    gender: female
//	    age: 15
//	    form: 2
//	    performance:
//	      - form: 1
//	        subjects: {math: 80, physics: 60, chemistry: 70, biology: 90}
//
// Every entry goes through student.Service.Register and student.Service.RecordPerformance,
// so a roster is held to the same rules as any other input.
package seed

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/alama/core/student"
)

type (
	Roster struct {
		Students []Entry `yaml:"students"`
	}

	Entry struct {
		ID          string        `yaml:"id"`
		Name        string        `yaml:"name"`
		Gender      string        `yaml:"gender"`
		Age         *int          `yaml:"age"`
		Form        int           `yaml:"form"`
		Performance []Performance `yaml:"performance"`
	}

	Performance struct {
		Form     int                    `yaml:"form"`
		Subjects map[string]interface{} `yaml:"subjects"`
	}
)

// Load registers every student of the roster read from r, then records their results.
// It stops at the first rejected entry and returns the number of students registered so far.
func Load(ctx context.Context, r io.Reader, svc student.Service) (int, error) {
	var roster Roster
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&roster); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, errors.Wrap(err, "decoding roster")
	}

	var count int
	for i, entry := range roster.Students {
		std, err := svc.Register(ctx, student.NewStudent{
			ID:     entry.ID,
			Name:   entry.Name,
			Gender: entry.Gender,
			Age:    entry.Age,
			Form:   entry.Form,
		})
		if err != nil {
			return count, errors.Wrapf(err, "registering student #%d (%s)", i+1, entry.ID)
		}
		count++

		for _, perf := range entry.Performance {
			if _, err := svc.RecordPerformance(ctx, std.ID, student.NewPerformance{
				Form:     perf.Form,
				Subjects: perf.Subjects,
			}); err != nil {
				return count, errors.Wrapf(err, "recording form %d results of %s", perf.Form, std.ID)
			}
		}
	}
	return count, nil
}

// LoadFile loads the roster file at path.
func LoadFile(ctx context.Context, path string, svc student.Service) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "opening roster")
	}
	defer func() { _ = f.Close() }()
	return Load(ctx, f, svc)
}

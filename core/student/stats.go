package student

// Average returns the mean of the record's subject scores.
func (r PerformanceRecord) Average() float64 {
	if len(r.Subjects) == 0 {
		return 0
	}
	var total float64
	for _, sub := range r.Subjects.Subjects() {
		total += r.Subjects[sub]
	}
	return total / float64(len(r.Subjects))
}

// OverallAverage returns the mean of every subject score across all the student's records.
// Each score weighs the same, this is not a mean of the form averages.
// ok is false when the student has no scores yet.
func (s Student) OverallAverage() (avg float64, ok bool) {
	var (
		total float64
		count int
	)
	for _, rec := range s.Performance {
		for _, sub := range rec.Subjects.Subjects() {
			total += rec.Subjects[sub]
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return total / float64(count), true
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/volatiletech/null/v8"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/trezcool/alama/core/student"
)

const (
	noStudentsText = "No students found."
	noResultsText  = "No results recorded yet."
	notFoundText   = "Student not found."
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatForm(form int) string {
	return "Form " + strconv.Itoa(form)
}

func formatAverage(avg null.Float64) string {
	if !avg.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", avg.Float64)
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func formatSubjects(subjects []student.Subject) []string {
	caser := cases.Title(language.English)
	names := make([]string, len(subjects))
	for i, sub := range subjects {
		names[i] = caser.String(string(sub))
	}
	return names
}

// renderRoster prints one row per student: ID, name, form and overall average.
func renderRoster(w io.Writer, summaries []student.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, noStudentsText)
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tName\tForm\tAverage")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, formatForm(s.Form), formatAverage(s.OverallAverage))
	}
	return tw.Flush()
}

// renderReport prints the student's details followed by their results, in the curriculum's subject order.
func renderReport(w io.Writer, r student.Report, c student.Curriculum) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "ID:\t%s\n", r.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Gender:\t%s\n", r.Gender)
	fmt.Fprintf(tw, "Age:\t%d\n", r.Age)
	fmt.Fprintf(tw, "Current Level:\t%s\n", formatForm(r.Form))
	fmt.Fprintf(tw, "Overall Average:\t%s\n", formatAverage(r.OverallAverage))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if len(r.Records) == 0 {
		_, err := fmt.Fprintln(w, noResultsText)
		return err
	}

	tw = newTabWriter(w)
	fmt.Fprintf(tw, "Form\t%s\tAverage\n", strings.Join(formatSubjects(c.Subjects), "\t"))
	for _, rec := range r.Records {
		cells := make([]string, 0, len(c.Subjects)+2)
		cells = append(cells, formatForm(rec.Form))
		for _, sub := range c.Subjects {
			cells = append(cells, formatScore(rec.Subjects[sub]))
		}
		cells = append(cells, fmt.Sprintf("%.2f%%", rec.Average))
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func renderCurriculum(w io.Writer, c student.Curriculum) error {
	forms := make([]string, 0, c.MaxForm-c.MinForm+1)
	for _, f := range c.Forms() {
		forms = append(forms, formatForm(f))
	}
	ages := fmt.Sprintf("%d to %d", c.MinAge, c.MaxAge)
	if c.MaxAge == 0 {
		ages = fmt.Sprintf("%d and over", c.MinAge)
	}

	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Curriculum:\t%s\n", c.Name)
	fmt.Fprintf(tw, "Forms:\t%s\n", strings.Join(forms, ", "))
	fmt.Fprintf(tw, "Subjects:\t%s\n", strings.Join(formatSubjects(c.Subjects), ", "))
	fmt.Fprintf(tw, "Ages:\t%s\n", ages)
	return tw.Flush()
}

package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/student"
)

type (
	CurriculumResponse struct {
		student.Curriculum
		Forms   []int    `json:"forms"`
		Genders []string `json:"genders"`
	}

	PromoteResponse struct {
		Promoted bool           `json:"promoted"`
		Message  string         `json:"message,omitempty"`
		Student  student.Report `json:"student"`
	}

	// PerformancePrefill holds the initial values of a performance record for the student's current form.
	// Subjects holds the scores already recorded for that form, if any.
	PerformancePrefill struct {
		StudentID string         `json:"student_id"`
		Form      int            `json:"form"`
		Subjects  student.Scores `json:"subjects,omitempty"`
	}
)

type studentApi struct {
	svc student.Service
}

func registerStudentAPI(g *echo.Group, svc student.Service) {
	api := studentApi{svc: svc}

	g.GET("/curriculum", api.curriculum)

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("", api.destroyMultiple)

	// detail endpoints
	dg := sg.Group("/:id", ctxStudentMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/promote", api.promote)
	dg.GET("/performance/new", api.newPerformance)
	dg.PUT("/performance", api.recordPerformance)
}

// Handlers

func (api *studentApi) curriculum(ctx echo.Context) error {
	c := api.svc.Curriculum()
	return ctx.JSON(http.StatusOK, CurriculumResponse{
		Curriculum: c,
		Forms:      c.Forms(),
		Genders:    student.Genders,
	})
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	std, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return studentError(err, "registering student")
	}
	return ctx.JSON(http.StatusCreated, std.Report())
}

func (api *studentApi) query(ctx echo.Context) error {
	filter, err := bindQueryFilter(ctx)
	if err != nil {
		return err
	}

	students, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	summaries := make([]student.Summary, 0, len(students))
	for _, std := range students {
		summaries = append(summaries, std.Summary())
	}
	return ctx.JSON(http.StatusOK, summaries)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}
	return ctx.JSON(http.StatusOK, std.Report())
}

func (api *studentApi) update(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	var data student.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}

	std, err = api.svc.Edit(ctx.Request().Context(), std.ID, data)
	if err != nil {
		return studentError(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, std.Report())
}

func (api *studentApi) promote(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	std, err = api.svc.Promote(ctx.Request().Context(), std.ID)
	if err != nil {
		if errors.Cause(err) == student.ErrAtMaxLevel {
			return ctx.JSON(http.StatusOK, PromoteResponse{
				Promoted: false,
				Message:  student.ErrAtMaxLevel.Error(),
				Student:  std.Report(),
			})
		}
		return studentError(err, "promoting student")
	}
	return ctx.JSON(http.StatusOK, PromoteResponse{Promoted: true, Student: std.Report()})
}

func (api *studentApi) newPerformance(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}
	prefill := PerformancePrefill{StudentID: std.ID, Form: std.Form}
	if rec, ok := std.PerformanceByForm(std.Form); ok {
		prefill.Subjects = rec.Subjects
	}
	return ctx.JSON(http.StatusOK, prefill)
}

func (api *studentApi) recordPerformance(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	var data student.NewPerformance
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPerformance")
	}

	rec, err := api.svc.RecordPerformance(ctx.Request().Context(), std.ID, data)
	if err != nil {
		return studentError(err, "recording performance")
	}
	return ctx.JSON(http.StatusOK, student.RecordReport{
		Form:     rec.Form,
		Subjects: rec.Subjects,
		Average:  rec.Average(),
	})
}

func (api *studentApi) destroy(ctx echo.Context) error {
	std, err := getContextStudent(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context student")
	}

	if err = api.svc.Delete(ctx.Request().Context(), std.ID); err != nil {
		return studentError(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) destroyMultiple(ctx echo.Context) error {
	ids := bindIDs(ctx)
	if len(ids) == 0 {
		return ctx.NoContent(http.StatusNoContent)
	}

	if err := api.svc.Delete(ctx.Request().Context(), ids...); err != nil {
		return studentError(err, "deleting students")
	}
	return ctx.NoContent(http.StatusNoContent)
}

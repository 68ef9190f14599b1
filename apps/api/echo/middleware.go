package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/student"
)

const ctxObjectKey = "object"

var errStdNotFoundInCtx = errors.New("student object not found in echo.Context")

// ctxStudentMiddleware loads the student identified by the `:id` path param into the context.
func ctxStudentMiddleware(svc student.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			std, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				return studentError(err, "getting student")
			}
			ctx.Set(ctxObjectKey, std)
			return next(ctx)
		}
	}
}

func getContextStudent(ctx echo.Context) (student.Student, error) {
	std, ok := ctx.Get(ctxObjectKey).(student.Student)
	if !ok {
		return student.Student{}, errStdNotFoundInCtx
	}
	return std, nil
}

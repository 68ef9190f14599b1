package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/student"
)

const (
	searchParam = "search"
	formParam   = "form"
	idParam     = "id"
)

// bindQueryFilter reads `?search=&form=`; an empty param leaves its filter unset.
func bindQueryFilter(ctx echo.Context) (student.QueryFilter, error) {
	filter := student.QueryFilter{Search: ctx.QueryParam(searchParam)}

	if val := strings.TrimSpace(ctx.QueryParam(formParam)); val != "" {
		form, err := strconv.Atoi(val)
		if err != nil {
			return filter, core.NewValidationError(err, core.FieldError{Field: formParam, Error: "form must be a number"})
		}
		filter.Form = &form
	}
	return filter, nil
}

// bindIDs reads the repeated `?id=` param, ignoring blank values.
func bindIDs(ctx echo.Context) []string {
	var ids []string
	for _, id := range ctx.QueryParams()[idParam] {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

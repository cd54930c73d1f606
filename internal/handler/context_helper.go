package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-schedule-editor/internal/middleware"
	"github.com/noah-isme/sma-schedule-editor/internal/models"
	appErrors "github.com/noah-isme/sma-schedule-editor/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// editContext builds the edit context from the workspace path parameter and the scope, week or
// date query parameters. The week path parameter wins over the query. Without either the current
// week is used.
func editContext(c *gin.Context, now func() time.Time) (models.EditContext, error) {
	ec := models.EditContext{
		WorkspaceID: c.Param("workspace"),
		Scope:       models.EditScope(c.DefaultQuery("scope", string(models.EditScopeWeek))),
	}

	switch {
	case c.Param("week") != "":
		ec.WeekID = c.Param("week")
	case c.Query("week") != "":
		ec.WeekID = c.Query("week")
	case c.Query("date") != "":
		date, err := time.Parse("2006-01-02", c.Query("date"))
		if err != nil {
			return ec, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must look like 2025-02-14")
		}
		ec.WeekID = models.WeekKey(date)
	default:
		ec.WeekID = models.WeekKey(now())
	}

	readOnly, _ := strconv.ParseBool(c.Query("read_only"))
	ec.ReadOnly = readOnly || claimsFromContext(c).ReadOnly()
	return ec, nil
}

package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sangkips/bebidas-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

const dateLayout = "2006-01-02"

// paramID parses a uuid path parameter, answering 400 when it is malformed
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, answering 400 on malformed input
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// bindQuery decodes query parameters, answering 400 on malformed input
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, apperror.NewBadRequestError("Invalid query parameters"))
		return false
	}
	return true
}

// parseDate reads a YYYY-MM-DD value as midnight in loc; empty gives nil
func parseDate(field, value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

// parseEndDate is parseDate moved to the start of the following day, so the
// range includes the whole end date
func parseEndDate(field, value string, loc *time.Location) (*time.Time, error) {
	t, err := parseDate(field, value, loc)
	if t == nil || err != nil {
		return t, err
	}
	end := t.AddDate(0, 0, 1)
	return &end, nil
}

// parseTime reads an RFC 3339 timestamp or a YYYY-MM-DD date
func parseTime(field, value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return parseDate(field, value, loc)
}

// optionalID parses a uuid query value; empty gives nil
func optionalID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a valid id")
	}
	return &id, nil
}

// firstError returns the first non-nil error
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

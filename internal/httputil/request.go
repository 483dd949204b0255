package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BindData binds the JSON body of the request to data.
//
// Type errors are returned as they are since they name the offending
// field. All other errors are logged and replaced by ErrInvalidBody.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return err
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// QueryInt returns the integer value of a query parameter or the default
// when the parameter is not set.
func QueryInt(c *gin.Context, key string, defaultValue int) (int, error) {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, ErrInvalidQueryInt
	}

	return i, nil
}

// GetBodyFields returns the names of the fields of resource that are set
// in the request body. The body can be read again afterwards.
func GetBodyFields(c *gin.Context, resource any) ([]any, error) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return []any{}, ErrInvalidBody
	}

	var bodyFields []any
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		if _, ok := mapBody[field.Tag.Get("json")]; ok {
			bodyFields = append(bodyFields, field.Name)
		}
	}

	return bodyFields, nil
}

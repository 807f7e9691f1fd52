package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/grind-calculator/internal/domain/dto"
	"github.com/guttosm/grind-calculator/internal/i18n"
	"github.com/guttosm/grind-calculator/internal/middleware"
)

// Validator is implemented by request bodies with rules beyond their binding tags.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into a new T and runs its
// Validate method when it has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	return bindAndValidate[T](c.ShouldBindJSON)
}

// BuildQueryAndValidate is BuildRequestAndValidate for query parameters.
func BuildQueryAndValidate[T any](c *gin.Context) (*T, error) {
	return bindAndValidate[T](c.ShouldBindQuery)
}

func bindAndValidate[T any](bind func(any) error) (*T, error) {
	req := new(T)
	if err := bind(req); err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// ResponseBuilder writes the success and error envelopes with the request id
// and messages translated for the caller's locale.
type ResponseBuilder struct {
	c      *gin.Context
	locale string
}

// NewResponseBuilder creates a response builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c, locale: i18n.GetLocale(c)}
}

func (b *ResponseBuilder) translate(key string) string {
	return i18n.GetTranslator().Translate(key, b.locale)
}

// Success writes data in the success envelope.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.SuccessWithMessage(statusCode, data, "")
}

// SuccessWithMessage is Success with a translated message. An empty key sends no message.
func (b *ResponseBuilder) SuccessWithMessage(statusCode int, data interface{}, messageKey string) {
	resp := dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now().UTC(),
	}
	if messageKey != "" {
		resp.Message = b.translate(messageKey)
	}
	b.c.JSON(statusCode, resp)
}

// SuccessOK writes a 200.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated writes a 201.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with a translated error envelope. err, when set, is attached
// to the context for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.abort(statusCode, b.newError(statusCode, b.translate(messageKey)), err)
}

// ErrorWithData is Error carrying data, such as the wizard state a rejected
// change was checked against.
func (b *ResponseBuilder) ErrorWithData(statusCode int, messageKey string, err error, data interface{}) {
	b.abort(statusCode, b.newError(statusCode, b.translate(messageKey)).WithData(data), err)
}

// ErrorWithMessage is Error with an already rendered message.
func (b *ResponseBuilder) ErrorWithMessage(statusCode int, message string, err error) {
	b.abort(statusCode, b.newError(statusCode, message), err)
}

// BindError answers 400 for a body that failed to bind or validate. Field
// validation failures name the field in details.
func (b *ResponseBuilder) BindError(err error) {
	var verr *dto.ValidationError
	if !errors.As(err, &verr) {
		b.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	resp := b.newError(http.StatusBadRequest, b.translate(i18n.ErrKeyInvalidRequest)).
		WithDetails(map[string]string{verr.Field: verr.Message})
	b.abort(http.StatusBadRequest, resp, err)
}

func (b *ResponseBuilder) newError(statusCode int, message string) dto.ErrorResponse {
	return dto.NewError(dto.ErrCodeFromStatus(statusCode), message).
		WithRequestID(middleware.GetRequestID(b.c))
}

func (b *ResponseBuilder) abort(statusCode int, resp dto.ErrorResponse, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(statusCode, resp)
}

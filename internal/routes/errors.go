package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/ranfdev/sqadmin/internal/models"
)

// AppError is returned by handlers wrapped with AppHandler.
type AppError interface {
	error
	Code() int
	Unwrap() error
}

type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Cause.Error()
}
func (e *ErrBadRequest) Code() int     { return http.StatusBadRequest }
func (e *ErrBadRequest) Unwrap() error { return e.Cause }

type ErrUnauthorized struct {
	Message string
	Cause   error
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Cause.Error()
}
func (e *ErrUnauthorized) Code() int     { return http.StatusUnauthorized }
func (e *ErrUnauthorized) Unwrap() error { return e.Cause }

type ErrNotFound struct {
	Cause error
	Thing string
}

func (e *ErrNotFound) Error() string {
	if e.Thing != "" {
		return e.Thing + " could not be found"
	}
	return e.Cause.Error()
}
func (e *ErrNotFound) Code() int     { return http.StatusNotFound }
func (e *ErrNotFound) Unwrap() error { return e.Cause }

type ErrInternal struct {
	Message string
	Cause   error
}

func (e *ErrInternal) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "Internal server error"
}
func (e *ErrInternal) Code() int     { return http.StatusInternalServerError }
func (e *ErrInternal) Unwrap() error { return e.Cause }

// fromDomain maps an error kind from the domain layer to its AppError.
func fromDomain(err error) AppError {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return &ErrBadRequest{Cause: err}
	case errors.Is(err, models.ErrUnauthorized):
		return &ErrUnauthorized{Cause: err}
	case errors.Is(err, models.ErrNotFound):
		return &ErrNotFound{Cause: err}
	default:
		return &ErrInternal{Cause: err}
	}
}

func (routes *Routes) AppHandler(handler func(w http.ResponseWriter, r *http.Request) AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := handler(w, r)
		if err == nil {
			return
		}
		http.Error(w, err.Error(), err.Code())

		event := hlog.FromRequest(r).Debug()
		if err.Code() >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Error()
		}
		event.
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", err.Code()).
			Err(err.Unwrap()).
			Msg(err.Error())
	}
}

// Package xhttp holds the uniform JSON response envelope for the HTTP api.
package xhttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streakbeast/beastcore/engine"
	"github.com/streakbeast/beastcore/errcode"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Error writes err as a JSON envelope. Ledger sentinels map to stable codes
// and the matching HTTP status; anything else is an internal error.
func Error(c *gin.Context, err error) {
	var coded *errcode.Err
	if errors.As(err, &coded) {
		c.JSON(statusOf(coded.Code), Response{Code: coded.Code, Msg: coded.Msg})
		return
	}

	code := errcode.CodeInternal
	switch {
	case errors.Is(err, engine.ErrInvalidStake),
		errors.Is(err, engine.ErrDurationTooShort),
		errors.Is(err, engine.ErrInvalidAgent):
		code = errcode.CodeBadParams
	case errors.Is(err, engine.ErrUnauthorized):
		code = errcode.CodeUnauthorized
	case errors.Is(err, engine.ErrHabitNotFound),
		errors.Is(err, engine.ErrPoolNotFound):
		code = errcode.CodeNotFound
	case errors.Is(err, engine.ErrHabitInactive),
		errors.Is(err, engine.ErrTooSoon),
		errors.Is(err, engine.ErrPoolNotEnded),
		errors.Is(err, engine.ErrAlreadyDistributed),
		errors.Is(err, engine.ErrNoRewardToClaim):
		code = errcode.CodeConflict
	}

	msg := err.Error()
	if code == errcode.CodeInternal {
		msg = errcode.ErrInternal.Msg
	}
	c.JSON(statusOf(code), Response{Code: code, Msg: msg})
}

func statusOf(code int) int {
	switch code {
	case errcode.CodeOK:
		return http.StatusOK
	case errcode.CodeBadParams, errcode.CodeCustom:
		return http.StatusBadRequest
	case errcode.CodeUnauthorized:
		return http.StatusForbidden
	case errcode.CodeNotFound:
		return http.StatusNotFound
	case errcode.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

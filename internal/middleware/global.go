package middleware

import (
	"errors"
	"net/http"

	"github.com/deppfellow/employee-directory/internal/errs"
	"github.com/deppfellow/employee-directory/internal/server"
	"github.com/deppfellow/employee-directory/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares holds the middleware applied to every route and the
// echo error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
	})
}

// RequestLogger writes one "API" line per request. Failed requests are
// logged with the status the error handler is about to write, since echo
// has not committed a status yet when the handler returns an error.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status
			if v.Error != nil {
				statusCode, _ = classify(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors handled by GlobalErrorHandler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().
				Err(err).
				Bytes("stack", stack).
				Msg("recovered from panic")
			return err
		},
	})
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// classify maps any error reaching the top of the stack onto a status and
// a client-safe body.
//
// Router errors (unknown route, wrong method) keep their status. Driver
// errors that escaped the service layer go through sqlerr. Anything else
// is an internal error and its cause is never written to the client.
func classify(err error) (int, errs.HTTPError) {
	var echoErr *echo.HTTPError
	if !errs.IsClassified(err) && errors.As(err, &echoErr) {
		message, ok := echoErr.Message.(string)
		if !ok || message == "" {
			message = http.StatusText(echoErr.Code)
		}
		if echoErr.Code == http.StatusNotFound {
			message = "Route not found"
		}

		status, body := errs.ToHTTP(errs.FromStatus(echoErr.Code, message))
		if echoErr.Code < http.StatusInternalServerError {
			status = echoErr.Code
		}
		return status, body
	}

	return errs.ToHTTP(sqlerr.HandleError(err))
}

// GlobalErrorHandler is echo's HTTPErrorHandler. Every failed request ends
// here and is answered with {detail, code}.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	status, body := classify(err)

	logger := GetLogger(c)
	if status >= http.StatusInternalServerError {
		logger.Error().Stack().
			Err(err).
			Int("status", status).
			Str("error_code", body.Code).
			Msg("request failed")
	} else {
		logger.Debug().
			Err(err).
			Int("status", status).
			Str("error_code", body.Code).
			Msg(body.Detail)
	}

	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to write error response")
	}
}

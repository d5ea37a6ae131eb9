package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"
)

// recoverer turns a handler panic into a 500 response.
func recoverer(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					logger.Error("handler panic", "err", err, "stack", string(debug.Stack()))
					_ = c.JSON(http.StatusInternalServerError, response{
						Status:  http.StatusInternalServerError,
						Message: "Internal Server Error",
					})
				}
			}()
			return next(c)
		}
	}
}

// requestLogging logs each request at debug level.
func requestLogging(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)

			logger.Debug("http request",
				"method", req.Method,
				"uri", req.RequestURI,
				"remote", req.RemoteAddr,
				"status", c.Response().Status,
				"latency", time.Since(start),
			)
			return err
		}
	}
}

// Package jupstub is a fixture server speaking the swap API wire format.
// Tests and local demos point a client at it instead of the live service.
package jupstub

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Fixtures holds the canned bodies the stub serves. Raw JSON keeps the stub
// independent of the client's decoders, so it can serve malformed payloads in
// failure tests too.
type Fixtures struct {
	Quote            json.RawMessage
	Swap             json.RawMessage
	SwapInstructions json.RawMessage
	Version          string
}

// ErrorResponse is the JSON error body the stub returns for bad requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// New builds the stub as an http.Handler, ready for httptest.NewServer.
func New(f Fixtures) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = errorJSON()

	e.GET("/quote", func(c echo.Context) error {
		for _, required := range []string{"inputMint", "outputMint", "amount"} {
			if c.QueryParam(required) == "" {
				return c.JSON(http.StatusBadRequest, ErrorResponse{
					Error: required + " is required",
					Code:  http.StatusBadRequest,
				})
			}
		}
		return c.JSONBlob(http.StatusOK, f.Quote)
	})

	e.POST("/swap", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, f.Swap)
	})

	e.POST("/swap-instructions", func(c echo.Context) error {
		return c.JSONBlob(http.StatusOK, f.SwapInstructions)
	})

	e.GET("/version", func(c echo.Context) error {
		return c.String(http.StatusOK, f.Version)
	})

	return e
}

// errorJSON keeps all error responses in a consistent JSON shape.
func errorJSON() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if he, ok := err.(*echo.HTTPError); ok {
			_ = c.JSON(he.Code, ErrorResponse{
				Error: http.StatusText(he.Code),
				Code:  he.Code,
			})
			return
		}
		_ = c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal server error",
			Code:  http.StatusInternalServerError,
		})
	}
}

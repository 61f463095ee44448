package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/rowanlabs/inkwell/pkg/internal/http/api"
	"github.com/rowanlabs/inkwell/pkg/internal/status"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Inkwell",
		AppName:               "Inkwell",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             10 * 1024 * 1024,
		ErrorHandler:          renderError,
	})

	app.Use(recover.New())
	app.Use(requestLogger)
	app.Use(authMiddleware)

	api.MapAPIs(app)

	return &App{app}
}

// renderError maps the core's error kinds onto response codes, so no caller
// ever has to inspect message text.
func renderError(c *fiber.Ctx, err error) error {
	var code int
	switch status.KindOf(err) {
	case status.KindNotFound:
		code = fiber.StatusNotFound
	case status.KindConflict:
		code = fiber.StatusConflict
	case status.KindForbidden:
		code = fiber.StatusForbidden
	case status.KindInvalidState:
		code = fiber.StatusBadRequest
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		} else {
			log.Error().Err(err).Str("path", c.Path()).Msg("An unexpected error occurred when handling request...")
			code = fiber.StatusInternalServerError
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", c.Response().StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("Handled request")
	return err
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/inkroot/inkroot/pkg/internal/auth"
	"github.com/inkroot/inkroot/pkg/internal/http/api"
	"github.com/inkroot/inkroot/pkg/internal/services"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Server struct {
	App *fiber.App
}

func NewServer() *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnablePrintRoutes:     viper.GetBool("debug.print_routes"),
		ServerHeader:          "Inkroot",
		AppName:               "Inkroot",
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             2 * 1024 * 1024,
	})

	app.Use(contextMiddleware)

	api.MapAPIs(app)

	return &Server{app}
}

// contextMiddleware resolves the caller from the session token, if any, and
// parks the account under the "user" local. Handlers that require a caller
// gate on auth.EnsureAuthenticated.
func contextMiddleware(c *fiber.Ctx) error {
	if tokenString, err := auth.ReadToken(c); err == nil {
		if claims, err := auth.Authenticate(tokenString); err == nil {
			if user, err := services.LoadAccountFromClaims(claims); err == nil {
				c.Locals("user", user)
			} else {
				log.Warn().Err(err).Msg("An error occurred when loading account from claims...")
			}
		}
	}

	return c.Next()
}

func (v *Server) Listen() {
	if err := v.App.Listen(strings.TrimSpace(viper.GetString("bind"))); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting http server.")
	}
}

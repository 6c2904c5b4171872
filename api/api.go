package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
	log           *logger.Logger
}

func NewAPIServer(listenAddress string, log *logger.Logger) *APIServer {
	return &APIServer{
		app:           NewEngine(),
		listenAddress: listenAddress,
		log:           log,
	}
}

// NewEngine builds the fiber app with the catalog's error and body settings
func NewEngine() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "student-catalog",
		DisableStartupMessage: true,
		BodyLimit:             1 << 20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return response.Error(c, fe.Code, fe.Message)
			}
			return response.InternalServerError(c, "Something went wrong")
		},
	})
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	s.log.Info("Starting API server", "address", s.listenAddress)
	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	return s.app.Shutdown()
}

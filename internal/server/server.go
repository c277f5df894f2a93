package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/okezie/marketlive-backend/internal/handler"
	"github.com/okezie/marketlive-backend/internal/imagestore"
	"github.com/okezie/marketlive-backend/internal/repository"
	"github.com/okezie/marketlive-backend/internal/ws"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, images imagestore.Store, publicDir, imageDir string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			return strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:"), nil
		},
	}))

	listingRepo := repository.NewListingRepository(db)
	registry := ws.NewRegistry()
	processor := ws.NewProcessor(listingRepo)
	gateway := ws.NewGateway(registry, processor)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	e.GET("/ws", gateway.Handle)

	imageHandler := handler.NewImageHandler(images)
	e.POST("/api/images", imageHandler.Upload)

	if imageDir != "" {
		e.Static("/images", imageDir)
	}
	if publicDir != "" {
		e.Static("/", publicDir)
	}

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

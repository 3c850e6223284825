package rest

import (
	"context"
	"fmt"
	"net/http"

	core_port "brokerage-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewServer создает новый экземпляр сервера и собирает роутинг.
func NewServer(
	port string,
	allowedOrigins []string,
	dealHandler *DealHandler,
	inquiryHandler *InquiryHandler,
	propertyHandler *PropertyHandler,
	analyticsHandler *AnalyticsHandler,
	baseLogger core_port.LoggerPort,
) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные роуты: карточка объекта, просмотры, заявки с сайта.
		r.Get("/properties/{propertyID}", propertyHandler.GetPropertyDetails)
		r.Post("/properties/{propertyID}/views", propertyHandler.RecordPropertyView)
		r.Post("/inquiries", inquiryHandler.CreateInquiry)

		// Приватные роуты для агентов (за API Gateway).
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Post("/deals", dealHandler.CreateDeal)
			r.Get("/deals/{dealID}", dealHandler.GetDealByID)
			r.Patch("/deals/{dealID}", dealHandler.UpdateDealTerms)
			r.Post("/deals/{dealID}/complete", dealHandler.CompleteDeal)
			r.Post("/deals/{dealID}/cancel", dealHandler.CancelDeal)

			r.Post("/inquiries/{inquiryID}/assign", inquiryHandler.AssignInquiry)
			r.Post("/inquiries/{inquiryID}/close", inquiryHandler.CloseInquiry)

			r.Get("/analytics/most-viewed", analyticsHandler.GetMostViewed)
			r.Get("/analytics/properties/{propertyID}/views", analyticsHandler.GetViewStats)
		})
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}

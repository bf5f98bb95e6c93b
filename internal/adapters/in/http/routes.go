package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"textile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oapi-codegen/runtime"
	echoSwagger "github.com/swaggo/echo-swagger"
)

const healthTimeout = 2 * time.Second

// NewEcho builds the HTTP router: request logging, panic recovery, metrics, OpenAPI request
// validation and every /api/v1 route, plus /health, /metrics and /swagger.
func NewEcho(ctx context.Context, s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			s.logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(s.metrics.Middleware())

	e.GET("/health", s.Health)
	e.GET("/metrics", s.metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", withID(s.GetOrder))
	api.POST("/orders/:id/approve", withID(s.ApproveOrder))
	api.POST("/orders/:id/start-production", withID(s.StartProduction))
	api.POST("/orders/:id/complete", withID(s.CompleteOrder))
	api.POST("/orders/:id/cancel", withID(s.CancelOrder))
	api.POST("/orders/:id/return-materials", withID(s.ReturnOrderMaterials))

	api.GET("/jobs", s.ListJobs)
	api.POST("/jobs", s.CreateJob)
	api.GET("/jobs/:id/summary", withID(s.GetJobSummary))
	api.GET("/jobs/:id/operators", withID(s.GetJobOperators))
	api.POST("/jobs/:id/plan-weaving", withID(s.PlanWeaving))
	api.POST("/jobs/:id/assign-machine", withID(s.AssignMachine))
	api.POST("/jobs/:id/advance", withID(s.AdvanceJob))
	api.POST("/jobs/:id/cancel", withID(s.CancelJob))
	api.POST("/jobs/:id/wastage", withID(s.RecordWastage))
	api.POST("/jobs/:id/packing", withID(s.RecordPacking))

	api.POST("/machines", s.RegisterMachine)
	api.POST("/machines/:id/maintenance", withID(s.StartMaintenance))
	api.DELETE("/machines/:id/maintenance", withID(s.EndMaintenance))
	api.POST("/machines/:id/shift-report", withID(s.SubmitShiftReport))

	api.POST("/materials", s.RegisterMaterial)
	api.GET("/materials/low-stock", s.GetLowStockMaterials)
	api.POST("/materials/:id/inward", withID(s.ReceiveMaterial))

	api.POST("/shift-reports", s.OpenShiftReport)

	api.POST("/preparatory/:id/start", withID(s.StartPreparatory))
	api.POST("/preparatory/:id/complete", withID(s.CompletePreparatory))

	return e, nil
}

// withID binds the id path parameter.
func withID(next func(c echo.Context, id kernel.UUID) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		var raw string
		err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
		if err != nil {
			return badRequest(c, "invalid format for parameter id: "+err.Error())
		}
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(c, "invalid format for parameter id: "+err.Error())
		}
		return next(c, id)
	}
}

// fromWire converts a body identifier; the nil UUID fails validation like a missing one.
func fromWire(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func toWire(id *kernel.UUID) *uuid.UUID {
	return kernel.NullableBytes(id)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if s.h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		defer cancel()
		if err := s.h.Ping(ctx); err != nil {
			s.logger.WarnContext(ctx, "health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, Error{
				Code:    http.StatusServiceUnavailable,
				Message: "database unavailable",
			})
		}
	}
	return c.String(http.StatusOK, "healthy")
}

func created(c echo.Context, id kernel.UUID) error {
	return c.JSON(http.StatusCreated, CreatedID{ID: id.Bytes()})
}

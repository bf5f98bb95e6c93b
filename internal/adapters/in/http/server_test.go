package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "textile/internal/adapters/in/http"
	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/job"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/services"
	"textile/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandFunc[C any] func(ctx context.Context, cmd C) error

func (f commandFunc[C]) Handle(ctx context.Context, cmd C) error { return f(ctx, cmd) }

type resultFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

func (f resultFunc[In, Out]) Handle(ctx context.Context, in In) (Out, error) { return f(ctx, in) }

func newEcho(t *testing.T, h httpadapter.Handlers) *echo.Echo {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpadapter.NewServer(h, httpadapter.NewMetrics(), logger)
	e, err := httpadapter.NewEcho(context.Background(), server)
	require.NoError(t, err)
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoadOpenAPI(t *testing.T) {
	doc, err := httpadapter.LoadOpenAPI(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/api/v1/machines/{id}/shift-report"))
}

func TestHealth(t *testing.T) {
	t.Run("should answer healthy", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{Ping: func(context.Context) error { return nil }})

		rec := serve(e, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "healthy", rec.Body.String())
	})

	t.Run("should report unavailable database", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{Ping: func(context.Context) error { return errors.New("connection refused") }})

		rec := serve(e, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestCreateOrder(t *testing.T) {
	customerID := kernel.NewUUID()
	productID := kernel.NewUUID()

	t.Run("should create order and sum repeated products", func(t *testing.T) {
		var got commands.CreateOrderCommand
		e := newEcho(t, httpadapter.Handlers{
			CreateOrder: commandFunc[commands.CreateOrderCommand](func(_ context.Context, cmd commands.CreateOrderCommand) error {
				got = cmd
				return nil
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/orders", `{
			"customerId": "`+customerID.String()+`",
			"poNumber": "PO-1042",
			"supplyDate": "2026-11-30",
			"products": [
				{"productId": "`+productID.String()+`", "quantity": 700},
				{"productId": "`+productID.String()+`", "quantity": 500}
			]}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created httpadapter.CreatedID
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, got.OrderID().Bytes(), created.ID)
		assert.True(t, customerID.IsEqual(got.CustomerID()))
		assert.Equal(t, "PO-1042", got.PONumber())
		assert.Equal(t, 1200, got.Quantities().Of(productID))
		assert.Equal(t, time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC), got.SupplyDate().UTC())
	})

	t.Run("should reject body without products before the handler", func(t *testing.T) {
		called := false
		e := newEcho(t, httpadapter.Handlers{
			CreateOrder: commandFunc[commands.CreateOrderCommand](func(context.Context, commands.CreateOrderCommand) error {
				called = true
				return nil
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/orders", `{"customerId": "`+customerID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, decodeError(t, rec).Code)
	})

	t.Run("should map unknown customer to not found", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			CreateOrder: commandFunc[commands.CreateOrderCommand](func(context.Context, commands.CreateOrderCommand) error {
				return errs.NewObjectNotFoundError("customer", customerID)
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/orders", `{
			"customerId": "`+customerID.String()+`",
			"products": [{"productId": "`+productID.String()+`", "quantity": 10}]}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderTransitions(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("should approve order", func(t *testing.T) {
		var got kernel.UUID
		e := newEcho(t, httpadapter.Handlers{
			ApproveOrder: commandFunc[commands.OrderCommand](func(_ context.Context, cmd commands.OrderCommand) error {
				got = cmd.OrderID()
				return nil
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/approve", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, orderID.IsEqual(got))
	})

	t.Run("should answer conflict on insufficient stock", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			ApproveOrder: commandFunc[commands.OrderCommand](func(context.Context, commands.OrderCommand) error {
				return errs.NewInsufficientStockError("Rubber 90", 12.5, 3)
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/approve", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "Rubber 90")
	})

	t.Run("should reject malformed id", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{})

		rec := serve(e, http.MethodPost, "/api/v1/orders/not-a-uuid/cancel", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should hide internal errors", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			CancelOrder: commandFunc[commands.OrderCommand](func(context.Context, commands.OrderCommand) error {
				return errors.New("pq: connection reset by peer")
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/orders/"+orderID.String()+"/cancel", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, decodeError(t, rec).Message, "pq")
	})
}

func TestGetOrder(t *testing.T) {
	orderID := kernel.NewUUID()
	productID := kernel.NewUUID()
	machineID := kernel.NewUUID()
	e := newEcho(t, httpadapter.Handlers{
		GetOrderDetail: resultFunc[queries.GetOrderDetailQuery, queries.GetOrderDetailQueryResponse](
			func(_ context.Context, q queries.GetOrderDetailQuery) (queries.GetOrderDetailQueryResponse, error) {
				if !q.OrderID().IsEqual(orderID) {
					return queries.GetOrderDetailQueryResponse{}, errs.NewObjectNotFoundError("order", q.OrderID())
				}
				return queries.GetOrderDetailQueryResponse{
					ID:         orderID,
					CustomerID: kernel.NewUUID(),
					PONumber:   "PO-7",
					SupplyDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
					Status:     "InProgress",
					Lines:      []queries.OrderLineView{{ProductID: productID, Ordered: 100, Pending: 40, Produced: 60}},
					Jobs:       []queries.OrderJobView{{ID: kernel.NewUUID(), Status: "weaving", MachineID: &machineID}},
				}, nil
			}),
	})

	t.Run("should return lines and jobs", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/v1/orders/"+orderID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		var detail httpadapter.OrderDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.Equal(t, "InProgress", detail.Status)
		assert.Equal(t, "2026-12-01", detail.SupplyDate.String())
		require.Len(t, detail.Lines, 1)
		assert.Equal(t, 40, detail.Lines[0].Pending)
		require.Len(t, detail.Jobs, 1)
		assert.Equal(t, machineID.Bytes(), *detail.Jobs[0].MachineID)
	})

	t.Run("should answer not found", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/api/v1/orders/"+kernel.NewUUID().String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestJobs(t *testing.T) {
	jobID := kernel.NewUUID()
	productID := kernel.NewUUID()

	t.Run("should advance job and count the stage", func(t *testing.T) {
		var got job.Status
		e := newEcho(t, httpadapter.Handlers{
			AdvanceJob: commandFunc[commands.AdvanceJobCommand](func(_ context.Context, cmd commands.AdvanceJobCommand) error {
				got = cmd.Next()
				return nil
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/advance", `{"status": "finishing"}`)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, job.Finishing, got)

		metrics := serve(e, http.MethodGet, "/metrics", "")
		assert.Contains(t, metrics.Body.String(), `textile_floor_job_stage_transitions_total{stage="finishing"} 1`)
	})

	t.Run("should answer conflict on skipped stage", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			AdvanceJob: commandFunc[commands.AdvanceJobCommand](func(context.Context, commands.AdvanceJobCommand) error {
				return errs.NewInvalidTransitionError("job", "weaving", "checking", "finishing")
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/advance", `{"status": "checking"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "expected next status is finishing")
	})

	t.Run("should reject unknown stage", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{})

		rec := serve(e, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/advance", `{"status": "dyeing"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should report empty heads of a weaving plan", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			PlanWeaving: commandFunc[commands.PlanWeavingCommand](func(context.Context, commands.PlanWeavingCommand) error {
				return errs.NewIncompleteAssignmentError([]int{3})
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/plan-weaving", `{
			"machineId": "`+kernel.NewUUID().String()+`",
			"heads": [{"head": 1, "productId": "`+productID.String()+`"}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "heads [3]")
	})

	t.Run("should cancel without a body", func(t *testing.T) {
		var reason string
		e := newEcho(t, httpadapter.Handlers{
			CancelJob: commandFunc[commands.CancelJobCommand](func(_ context.Context, cmd commands.CancelJobCommand) error {
				reason = cmd.Reason()
				return nil
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/cancel", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, reason)
	})

	t.Run("should filter jobs by stage", func(t *testing.T) {
		var got []job.Status
		e := newEcho(t, httpadapter.Handlers{
			ListJobs: resultFunc[queries.ListJobsQuery, []queries.ListJobsQueryResponse](
				func(_ context.Context, q queries.ListJobsQuery) ([]queries.ListJobsQueryResponse, error) {
					got = q.Statuses()
					return []queries.ListJobsQueryResponse{{ID: jobID, OrderID: kernel.NewUUID(), Status: "weaving", Planned: 50}}, nil
				}),
		})

		rec := serve(e, http.MethodGet, "/api/v1/jobs?status=weaving&status=finishing", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []job.Status{job.Weaving, job.Finishing}, got)
		var items []httpadapter.JobListItem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 1)
		assert.Equal(t, 50, items[0].Planned)
		assert.Nil(t, items[0].MachineID)
	})

	t.Run("should refuse packing above produced", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			RecordPacking: commandFunc[commands.RecordPackingCommand](func(context.Context, commands.RecordPackingCommand) error {
				return errs.NewQuantityExceededError(productID, 11, 10)
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/jobs/"+jobID.String()+"/packing",
			`{"productId": "`+productID.String()+`", "quantity": 11}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSubmitShiftReport(t *testing.T) {
	machineID := kernel.NewUUID()
	productA := kernel.NewUUID()

	t.Run("should answer allocation and count meters", func(t *testing.T) {
		var got commands.SubmitShiftReportCommand
		e := newEcho(t, httpadapter.Handlers{
			SubmitShiftReport: resultFunc[commands.SubmitShiftReportCommand, services.Allocation](
				func(_ context.Context, cmd commands.SubmitShiftReportCommand) (services.Allocation, error) {
					got = cmd
					return services.Allocation{
						Credited:  map[kernel.UUID]int{productA: 20},
						Discarded: map[kernel.UUID]int{productA: 10},
					}, nil
				}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/machines/"+machineID.String()+"/shift-report",
			`{"quantity": 30, "timer": "7h40m", "feedback": "yarn breaks on head 2"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.True(t, machineID.IsEqual(got.MachineID()))
		assert.Equal(t, 30, got.Quantity())
		var allocation httpadapter.Allocation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &allocation))
		assert.Equal(t, []httpadapter.ProductQuantity{{ProductID: productA.Bytes(), Quantity: 20}}, allocation.Credited)
		assert.Equal(t, []httpadapter.ProductQuantity{{ProductID: productA.Bytes(), Quantity: 10}}, allocation.Discarded)

		metrics := serve(e, http.MethodGet, "/metrics", "").Body.String()
		assert.Contains(t, metrics, "textile_floor_meters_credited_total 20")
		assert.Contains(t, metrics, "textile_floor_meters_discarded_total 10")
	})

	t.Run("should answer conflict for an idle machine", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			SubmitShiftReport: resultFunc[commands.SubmitShiftReportCommand, services.Allocation](
				func(context.Context, commands.SubmitShiftReportCommand) (services.Allocation, error) {
					return services.Allocation{}, errs.NewNoActiveJobError("NF-08")
				}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/machines/"+machineID.String()+"/shift-report", `{"quantity": 30}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decodeError(t, rec).Message, "NF-08")
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{})

		rec := serve(e, http.MethodPost, "/api/v1/machines/"+machineID.String()+"/shift-report", `{"quantity": -1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOpenShiftReport(t *testing.T) {
	var got commands.OpenShiftReportCommand
	e := newEcho(t, httpadapter.Handlers{
		OpenShiftReport: commandFunc[commands.OpenShiftReportCommand](func(_ context.Context, cmd commands.OpenShiftReportCommand) error {
			got = cmd
			return nil
		}),
	})

	rec := serve(e, http.MethodPost, "/api/v1/shift-reports", `{
		"machineId": "`+kernel.NewUUID().String()+`",
		"employeeId": "`+kernel.NewUUID().String()+`",
		"date": "2026-10-14",
		"shift": "NIGHT"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "NIGHT", string(got.Shift()))
	assert.Equal(t, 14, got.Date().Day())
}

func TestMaterials(t *testing.T) {
	t.Run("should list low stock with shortfall", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			GetLowStockMaterials: resultFunc[queries.GetLowStockMaterialsQuery, []queries.GetLowStockMaterialsQueryResponse](
				func(context.Context, queries.GetLowStockMaterialsQuery) ([]queries.GetLowStockMaterialsQueryResponse, error) {
					return []queries.GetLowStockMaterialsQueryResponse{
						{ID: kernel.NewUUID(), Name: "Rubber 90", Stock: 12, MinStock: 50},
					}, nil
				}),
		})

		rec := serve(e, http.MethodGet, "/api/v1/materials/low-stock", "")

		require.Equal(t, http.StatusOK, rec.Code)
		var materials []httpadapter.LowStockMaterial
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &materials))
		require.Len(t, materials, 1)
		assert.InDelta(t, 38.0, materials[0].Shortfall, 1e-9)
	})

	t.Run("should reject zero inward weight", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{})

		rec := serve(e, http.MethodPost, "/api/v1/materials/"+kernel.NewUUID().String()+"/inward", `{"weight": 0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should register material", func(t *testing.T) {
		var got commands.RegisterMaterialCommand
		e := newEcho(t, httpadapter.Handlers{
			RegisterMaterial: commandFunc[commands.RegisterMaterialCommand](func(_ context.Context, cmd commands.RegisterMaterialCommand) error {
				got = cmd
				return nil
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/materials", `{"name": "Polyester 150D", "category": "yarn", "minStock": 25}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "Polyester 150D", got.Name())
	})
}

func TestMachines(t *testing.T) {
	machineID := kernel.NewUUID()

	t.Run("should end maintenance with delete", func(t *testing.T) {
		var got kernel.UUID
		e := newEcho(t, httpadapter.Handlers{
			EndMaintenance: commandFunc[commands.MachineCommand](func(_ context.Context, cmd commands.MachineCommand) error {
				got = cmd.MachineID()
				return nil
			}),
		})

		rec := serve(e, http.MethodDelete, "/api/v1/machines/"+machineID.String()+"/maintenance", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, machineID.IsEqual(got))
	})

	t.Run("should refuse maintenance of a running machine", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{
			StartMaintenance: commandFunc[commands.MachineCommand](func(context.Context, commands.MachineCommand) error {
				return errs.NewStateConflictError("machine", "machine NF-08 is running")
			}),
		})

		rec := serve(e, http.MethodPost, "/api/v1/machines/"+machineID.String()+"/maintenance", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("should reject machine without heads", func(t *testing.T) {
		e := newEcho(t, httpadapter.Handlers{})

		rec := serve(e, http.MethodPost, "/api/v1/machines", `{"code": "NF-09", "headCount": 0}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPreparatory(t *testing.T) {
	e := newEcho(t, httpadapter.Handlers{
		CompletePreparatory: commandFunc[commands.PreparatoryCommand](func(context.Context, commands.PreparatoryCommand) error {
			return errs.NewInvalidTransitionError("preparatory record", "open", "completed", "in progress")
		}),
	})

	rec := serve(e, http.MethodPost, "/api/v1/preparatory/"+kernel.NewUUID().String()+"/complete", "")

	assert.Equal(t, http.StatusConflict, rec.Code)
}

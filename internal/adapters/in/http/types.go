package http

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Request and response bodies. Field names follow the OpenAPI document.

type CreatedID struct {
	ID uuid.UUID `json:"id"`
}

type ProductQuantity struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type NewOrder struct {
	CustomerID uuid.UUID           `json:"customerId"`
	PONumber   string              `json:"poNumber,omitempty"`
	SupplyDate *openapi_types.Date `json:"supplyDate,omitempty"`
	Products   []ProductQuantity   `json:"products"`
}

type OrderLine struct {
	ProductID uuid.UUID `json:"productId"`
	Ordered   int       `json:"ordered"`
	Pending   int       `json:"pending"`
	Produced  int       `json:"produced"`
	Packed    int       `json:"packed"`
}

type OrderJob struct {
	ID        uuid.UUID  `json:"id"`
	Status    string     `json:"status"`
	MachineID *uuid.UUID `json:"machineId"`
}

type OrderDetail struct {
	ID         uuid.UUID          `json:"id"`
	CustomerID uuid.UUID          `json:"customerId"`
	PONumber   string             `json:"poNumber"`
	SupplyDate openapi_types.Date `json:"supplyDate"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	Lines      []OrderLine        `json:"lines"`
	Jobs       []OrderJob         `json:"jobs"`
}

type NewJob struct {
	OrderID  uuid.UUID         `json:"orderId"`
	Products []ProductQuantity `json:"products"`
}

type HeadProduct struct {
	Head      int       `json:"head"`
	ProductID uuid.UUID `json:"productId"`
}

type WeavingPlan struct {
	MachineID uuid.UUID     `json:"machineId"`
	Heads     []HeadProduct `json:"heads"`
}

type MachineAssignment struct {
	MachineID uuid.UUID `json:"machineId"`
}

type JobAdvance struct {
	Status string `json:"status"`
}

type JobCancellation struct {
	Reason string `json:"reason"`
}

type NewWastage struct {
	ProductID  uuid.UUID `json:"productId"`
	EmployeeID uuid.UUID `json:"employeeId"`
	Quantity   int       `json:"quantity"`
	Reason     string    `json:"reason"`
}

type JobProduct struct {
	ProductID      uuid.UUID `json:"productId"`
	Planned        int       `json:"planned"`
	Produced       int       `json:"produced"`
	Packed         int       `json:"packed"`
	Wasted         int       `json:"wasted"`
	Remaining      int       `json:"remaining"`
	PackingPercent int       `json:"packingPercent"`
}

type JobSummary struct {
	JobID     uuid.UUID    `json:"jobId"`
	OrderID   uuid.UUID    `json:"orderId"`
	Status    string       `json:"status"`
	MachineID *uuid.UUID   `json:"machineId"`
	Products  []JobProduct `json:"products"`
}

type JobListItem struct {
	ID        uuid.UUID  `json:"id"`
	OrderID   uuid.UUID  `json:"orderId"`
	PONumber  string     `json:"poNumber"`
	Status    string     `json:"status"`
	MachineID *uuid.UUID `json:"machineId"`
	Planned   int        `json:"planned"`
	Produced  int        `json:"produced"`
	CreatedAt time.Time  `json:"createdAt"`
}

type JobOperator struct {
	EmployeeID uuid.UUID `json:"employeeId"`
	Name       string    `json:"name"`
	Shifts     int       `json:"shifts"`
}

type NewMachine struct {
	Code         string `json:"code"`
	Manufacturer string `json:"manufacturer"`
	HeadCount    int    `json:"headCount"`
}

type NewMaterial struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	MinStock float64 `json:"minStock"`
}

type Inward struct {
	Weight    float64 `json:"weight"`
	Reference string  `json:"reference"`
}

type LowStockMaterial struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Stock     float64   `json:"stock"`
	MinStock  float64   `json:"minStock"`
	Shortfall float64   `json:"shortfall"`
}

type NewShiftReport struct {
	MachineID  uuid.UUID          `json:"machineId"`
	EmployeeID uuid.UUID          `json:"employeeId"`
	Date       openapi_types.Date `json:"date"`
	Shift      string             `json:"shift"`
}

type ShiftProduction struct {
	Quantity int    `json:"quantity"`
	Timer    string `json:"timer"`
	Feedback string `json:"feedback"`
}

type Allocation struct {
	Credited  []ProductQuantity `json:"credited"`
	Discarded []ProductQuantity `json:"discarded"`
}

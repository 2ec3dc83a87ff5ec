package http

import (
	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/application/usecases/queries"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CustomerPayload carries the recipient details of an order.
type CustomerPayload struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	Landmark string `json:"landmark,omitempty"`
}

// ItemPayload is one order line.
type ItemPayload struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Customer       CustomerPayload `json:"customer"`
	Items          []ItemPayload   `json:"items"`
	TotalAmount    int64           `json:"total_amount"`
	PaymentType    string          `json:"payment_type"`
	DeliveryDate   string          `json:"delivery_date"`
	TimeWindowFrom string          `json:"time_window_from,omitempty"`
	TimeWindowTo   string          `json:"time_window_to,omitempty"`
	RegionID       string          `json:"region_id"`
	OperatorID     string          `json:"operator_id"`
	Comment        string          `json:"comment,omitempty"`
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	customer, err := order.NewCustomer(
		r.Customer.Name, r.Customer.Phone, r.Customer.Address, r.Customer.Landmark,
	)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]order.Item, 0, len(r.Items))
	for _, line := range r.Items {
		item, itemErr := order.NewItem(line.Name, line.Quantity)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	paymentType, err := order.PaymentTypeFromString(r.PaymentType)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	deliveryDate, err := kernel.NewDate(r.DeliveryDate)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	regionID, err := kernel.UUIDFromString(r.RegionID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	operatorID, err := kernel.UUIDFromString(r.OperatorID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(
		kernel.NewUUID(), customer, items, r.TotalAmount, paymentType,
		deliveryDate, r.TimeWindowFrom, r.TimeWindowTo, regionID, operatorID,
		r.Comment,
	)
}

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	ActorID    string `json:"actor_id"`
	Status     string `json:"status"`
	ReasonCode string `json:"reason_code,omitempty"`
	Note       string `json:"note,omitempty"`
}

func (r ChangeStatusRequest) toCommand(
	orderID kernel.UUID,
) (commands.ChangeOrderStatusCommand, error) {
	actorID, err := kernel.UUIDFromString(r.ActorID)
	if err != nil {
		return commands.ChangeOrderStatusCommand{}, err
	}

	target, err := order.StatusFromString(r.Status)
	if err != nil {
		return commands.ChangeOrderStatusCommand{}, err
	}

	reasonCode := order.ReasonNone
	if r.ReasonCode != "" {
		reasonCode, err = order.ReasonCodeFromString(r.ReasonCode)
		if err != nil {
			return commands.ChangeOrderStatusCommand{}, err
		}
	}

	return commands.NewChangeOrderStatusCommand(orderID, actorID, target, reasonCode, r.Note)
}

// HistoryEventPayload is one audit trail entry of an order.
type HistoryEventPayload struct {
	ActorID    string `json:"actor_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	ReasonCode string `json:"reason_code,omitempty"`
	Note       string `json:"note,omitempty"`
	At         string `json:"at"`
}

// OrderResponse is the full representation of an order, returned by the
// command endpoints.
type OrderResponse struct {
	ID             string                `json:"id"`
	HumanID        string                `json:"human_id"`
	Status         string                `json:"status"`
	Customer       CustomerPayload       `json:"customer"`
	Items          []ItemPayload         `json:"items"`
	TotalAmount    int64                 `json:"total_amount"`
	PaymentType    string                `json:"payment_type"`
	DeliveryDate   string                `json:"delivery_date"`
	TimeWindowFrom string                `json:"time_window_from,omitempty"`
	TimeWindowTo   string                `json:"time_window_to,omitempty"`
	RegionID       string                `json:"region_id"`
	CourierID      string                `json:"courier_id,omitempty"`
	ReasonCode     string                `json:"reason_code,omitempty"`
	Comment        string                `json:"comment,omitempty"`
	History        []HistoryEventPayload `json:"history"`
	Version        int                   `json:"version"`
}

// DuplicateOrderResponse is returned when creation hits an existing order
// for the same phone and delivery date. Existing is nil when the duplicate
// was detected by the storage constraint rather than the pre-check.
type DuplicateOrderResponse struct {
	Code     int            `json:"code"`
	Message  string         `json:"message"`
	Existing *OrderResponse `json:"existing,omitempty"`
}

func orderFromAggregate(aggregate *order.Order) OrderResponse {
	items := make([]ItemPayload, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemPayload{Name: item.Name(), Quantity: item.Quantity()})
	}

	history := make([]HistoryEventPayload, 0, len(aggregate.History()))
	for _, event := range aggregate.History() {
		entry := HistoryEventPayload{
			ActorID: event.ActorID().String(),
			From:    event.From().String(),
			To:      event.To().String(),
			Note:    event.Note(),
			At:      event.At().Format("2006-01-02 15:04:05"),
		}
		if event.ReasonCode() != order.ReasonNone {
			entry.ReasonCode = event.ReasonCode().String()
		}
		history = append(history, entry)
	}

	response := OrderResponse{
		ID:      aggregate.ID().String(),
		HumanID: aggregate.HumanID(),
		Status:  aggregate.Status().String(),
		Customer: CustomerPayload{
			Name:     aggregate.Customer().Name(),
			Phone:    aggregate.Customer().Phone(),
			Address:  aggregate.Customer().Address(),
			Landmark: aggregate.Customer().Landmark(),
		},
		Items:          items,
		TotalAmount:    aggregate.TotalAmount(),
		PaymentType:    aggregate.PaymentType().String(),
		DeliveryDate:   aggregate.DeliveryDate().String(),
		TimeWindowFrom: aggregate.TimeWindowFrom(),
		TimeWindowTo:   aggregate.TimeWindowTo(),
		RegionID:       aggregate.RegionID().String(),
		Comment:        aggregate.Comment(),
		History:        history,
		Version:        aggregate.Version(),
	}
	if aggregate.Courier() != nil {
		response.CourierID = aggregate.Courier().String()
	}
	if aggregate.ReasonCode() != order.ReasonNone {
		response.ReasonCode = aggregate.ReasonCode().String()
	}

	return response
}

// OrderListItem is one row of GET /api/v1/orders.
type OrderListItem struct {
	ID             string `json:"id"`
	HumanID        string `json:"human_id"`
	Status         string `json:"status"`
	CustomerName   string `json:"customer_name,omitempty"`
	CustomerPhone  string `json:"customer_phone"`
	Address        string `json:"address,omitempty"`
	DeliveryDate   string `json:"delivery_date"`
	TimeWindowFrom string `json:"time_window_from,omitempty"`
	TimeWindowTo   string `json:"time_window_to,omitempty"`
	TotalAmount    int64  `json:"total_amount"`
	CourierID      string `json:"courier_id,omitempty"`
	Comment        string `json:"comment,omitempty"`
}

func orderListItemFromRow(row queries.GetOrdersForUserQueryResponse) OrderListItem {
	item := OrderListItem{
		ID:             row.ID.String(),
		HumanID:        row.HumanID,
		Status:         row.Status.String(),
		CustomerName:   row.CustomerName,
		CustomerPhone:  row.CustomerPhone,
		Address:        row.Address,
		DeliveryDate:   row.DeliveryDate,
		TimeWindowFrom: row.TimeWindowFrom,
		TimeWindowTo:   row.TimeWindowTo,
		TotalAmount:    row.TotalAmount,
		Comment:        row.Comment,
	}
	if row.CourierID != nil {
		item.CourierID = row.CourierID.String()
	}

	return item
}

// DailyReportResponse is the body of GET /api/v1/reports/daily.
type DailyReportResponse struct {
	Date            string         `json:"date"`
	TotalOrders     int            `json:"total_orders"`
	CountByStatus   map[string]int `json:"count_by_status"`
	TotalAmount     int64          `json:"total_amount"`
	DeliveredAmount int64          `json:"delivered_amount"`
	ConversionRate  float64        `json:"conversion_rate"`
}

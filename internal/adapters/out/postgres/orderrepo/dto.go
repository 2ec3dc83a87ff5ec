// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The composite unique index on (customer_phone, delivery_date) is the
// storage-level duplicate guard: two concurrent inserts for the same phone
// and day cannot both succeed.
type OrderDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	HumanID        string      `gorm:"type:varchar(16);index"`
	Status         int         `gorm:"index"`
	Customer       CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Items          itemsJSON   `gorm:"type:jsonb"`
	TotalAmount    int64
	PaymentType    int
	DeliveryDate   string `gorm:"type:varchar(10);index;uniqueIndex:idx_orders_phone_date"`
	TimeWindowFrom string `gorm:"type:varchar(8)"`
	TimeWindowTo   string `gorm:"type:varchar(8)"`
	RegionID       uuid.UUID  `gorm:"type:uuid;index"`
	OperatorID     uuid.UUID  `gorm:"type:uuid"`
	CourierID      *uuid.UUID `gorm:"type:uuid;index"`
	ReasonCode     int
	Comment        string
	History        historyJSON `gorm:"type:jsonb"`
	Version        int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer contact columns.
type CustomerDTO struct {
	Name     string
	Phone    string `gorm:"type:varchar(32);uniqueIndex:idx_orders_phone_date"`
	Address  string
	Landmark string
}

// itemJSON is one order line inside the items jsonb column.
type itemJSON struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type itemsJSON []itemJSON

func (j itemsJSON) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (j *itemsJSON) Scan(value any) error {
	return scanJSON(value, j)
}

// historyEventJSON is one audit record inside the history jsonb column.
// Statuses and reason codes are stored as their integer enum values.
type historyEventJSON struct {
	ActorID    uuid.UUID `json:"actor_id"`
	From       int       `json:"from"`
	To         int       `json:"to"`
	ReasonCode int       `json:"reason_code"`
	Note       string    `json:"note"`
	At         time.Time `json:"at"`
}

type historyJSON []historyEventJSON

func (j historyJSON) Value() (driver.Value, error) {
	if j == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (j *historyJSON) Scan(value any) error {
	return scanJSON(value, j)
}

func scanJSON(value any, dst any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make(itemsJSON, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemJSON{Name: item.Name(), Quantity: item.Quantity()})
	}

	history := make(historyJSON, 0, len(aggregate.History()))
	for _, event := range aggregate.History() {
		history = append(history, historyEventJSON{
			ActorID:    event.ActorID().Bytes(),
			From:       int(event.From()),
			To:         int(event.To()),
			ReasonCode: int(event.ReasonCode()),
			Note:       event.Note(),
			At:         event.At(),
		})
	}

	return OrderDTO{
		ID:      aggregate.ID().Bytes(),
		HumanID: aggregate.HumanID(),
		Status:  int(aggregate.Status()),
		Customer: CustomerDTO{
			Name:     aggregate.Customer().Name(),
			Phone:    aggregate.Customer().Phone(),
			Address:  aggregate.Customer().Address(),
			Landmark: aggregate.Customer().Landmark(),
		},
		Items:          items,
		TotalAmount:    aggregate.TotalAmount(),
		PaymentType:    int(aggregate.PaymentType()),
		DeliveryDate:   aggregate.DeliveryDate().String(),
		TimeWindowFrom: aggregate.TimeWindowFrom(),
		TimeWindowTo:   aggregate.TimeWindowTo(),
		RegionID:       aggregate.RegionID().Bytes(),
		OperatorID:     aggregate.OperatorID().Bytes(),
		CourierID:      courierID,
		ReasonCode:     int(aggregate.ReasonCode()),
		Comment:        aggregate.Comment(),
		History:        history,
		Version:        aggregate.Version(),
	}
}

// toDomain converts a database row back into an order aggregate via
// RestoreOrder, which re-checks the history invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(
		dto.Customer.Name, dto.Customer.Phone, dto.Customer.Address, dto.Customer.Landmark)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		restored, itemErr := order.NewItem(item.Name, item.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, restored)
	}

	deliveryDate, err := kernel.NewDate(dto.DeliveryDate)
	if err != nil {
		return nil, err
	}

	regionID, err := kernel.UUIDFromBytes(dto.RegionID[:])
	if err != nil {
		return nil, err
	}

	operatorID, err := kernel.UUIDFromBytes(dto.OperatorID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	history := make([]order.HistoryEvent, 0, len(dto.History))
	for _, event := range dto.History {
		actorID, actorErr := kernel.UUIDFromBytes(event.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}
		history = append(history, order.NewHistoryEvent(
			actorID,
			order.Status(event.From),
			order.Status(event.To),
			order.ReasonCode(event.ReasonCode),
			event.Note,
			event.At,
		))
	}

	return order.RestoreOrder(
		id,
		dto.HumanID,
		order.Status(dto.Status),
		customer,
		items,
		dto.TotalAmount,
		order.PaymentType(dto.PaymentType),
		deliveryDate,
		dto.TimeWindowFrom,
		dto.TimeWindowTo,
		regionID,
		operatorID,
		courierID,
		order.ReasonCode(dto.ReasonCode),
		dto.Comment,
		history,
		dto.Version,
	)
}

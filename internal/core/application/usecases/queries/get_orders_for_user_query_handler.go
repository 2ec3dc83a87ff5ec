package queries

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/account"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersForUserQueryHandler lists orders from the database, scoped by the
// requester's role. Couriers see orders assigned to them plus the claimable
// today queue; operators, logists and admins see everything.
type GetOrdersForUserQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

// NewGetOrdersForUserQueryHandler creates a handler for order listings.
// Requires a GORM database connection; the clock anchors the "today" filter.
func NewGetOrdersForUserQueryHandler(db *gorm.DB, clock ports.Clock) GetOrdersForUserQueryHandler {
	return GetOrdersForUserQueryHandler{db: db, clock: clock}
}

// Handle executes the listing. Rows are sorted by delivery date, then by the
// operator-facing identifier, for stable chat output.
func (h GetOrdersForUserQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersForUserQuery,
) ([]GetOrdersForUserQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	role, err := h.requesterRole(ctx, query.RequesterID())
	if err != nil {
		return nil, err
	}

	conds := make([]string, 0, 2)
	args := make([]any, 0, 3)

	today := kernel.DateOf(h.clock.Now())

	switch query.Filter() {
	case FilterToday:
		conds = append(conds, "delivery_date = ?")
		args = append(args, today.String())
	case FilterTomorrow:
		conds = append(conds, "status = ?")
		args = append(args, int(order.QueuedTomorrow))
	case FilterAction:
		statuses := order.ActionableStatuses()
		ints := make([]int, 0, len(statuses))
		for _, s := range statuses {
			ints = append(ints, int(s))
		}
		conds = append(conds, "status IN ?")
		args = append(args, ints)
	case FilterAll:
		// no extra condition
	}

	if role == account.RoleCourier {
		conds = append(conds, "(courier_id = ? OR status = ?)")
		args = append(args, query.RequesterID().Bytes(), int(order.PublishedToday))
	}

	sqlText := `
		SELECT
			id,
			human_id,
			status,
			customer_name,
			customer_phone,
			customer_address,
			delivery_date,
			time_window_from,
			time_window_to,
			total_amount,
			courier_id,
			comment
		FROM orders
	`
	if len(conds) > 0 {
		sqlText += " WHERE " + strings.Join(conds, " AND ")
	}
	sqlText += " ORDER BY delivery_date, human_id"

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetOrdersForUserQueryResponse, 0)
	for rows.Next() {
		resp, scanErr := scanOrderRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

// requesterRole resolves the requester's role straight from the users table.
func (h GetOrdersForUserQueryHandler) requesterRole(
	ctx context.Context,
	requesterID kernel.UUID,
) (account.Role, error) {
	var roleName string
	err := h.db.WithContext(ctx).
		Raw("SELECT role FROM users WHERE id = ?", requesterID.Bytes()).
		Row().Scan(&roleName)
	if errors.Is(err, sql.ErrNoRows) {
		return account.RoleUnknown, errs.NewObjectNotFoundError("user", requesterID.String())
	}
	if err != nil {
		return account.RoleUnknown, err
	}

	return account.RoleFromString(roleName)
}

func scanOrderRow(rows *sql.Rows) (GetOrdersForUserQueryResponse, error) {
	var (
		resp      GetOrdersForUserQueryResponse
		id        uuid.UUID
		status    int
		courierID uuid.NullUUID
	)

	err := rows.Scan(
		&id,
		&resp.HumanID,
		&status,
		&resp.CustomerName,
		&resp.CustomerPhone,
		&resp.Address,
		&resp.DeliveryDate,
		&resp.TimeWindowFrom,
		&resp.TimeWindowTo,
		&resp.TotalAmount,
		&courierID,
		&resp.Comment,
	)
	if err != nil {
		return GetOrdersForUserQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrdersForUserQueryResponse{}, err
	}
	resp.ID = orderID
	resp.Status = order.Status(status)

	if courierID.Valid {
		cID, courierErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if courierErr != nil {
			return GetOrdersForUserQueryResponse{}, courierErr
		}
		resp.CourierID = &cID
	}

	return resp, nil
}

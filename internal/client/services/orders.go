package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/secondwear/internal/client/client"
	"github.com/dmitrijs2005/secondwear/internal/client/models"
	"github.com/dmitrijs2005/secondwear/internal/logging"
)

type OrderService interface {
	List(ctx context.Context, role models.OrderRole) ([]models.Order, error)
	Act(ctx context.Context, role models.OrderRole, order models.Order, action models.OrderAction) error
}

type orderService struct {
	gw  client.Gateway
	log logging.Logger
}

func NewOrderService(gw client.Gateway, log logging.Logger) OrderService {
	return &orderService{gw: gw, log: log.With("service", "orders")}
}

// List returns the orders where the user is the buyer or the seller.
func (s *orderService) List(ctx context.Context, role models.OrderRole) ([]models.Order, error) {
	if !role.Valid() {
		return nil, invalid(fmt.Sprintf("unknown order list %q, use buying or selling", role))
	}
	var out []models.Order
	if err := decodeWrapped(s.gw.Call(ctx, "/orders/"+string(role), nil), "orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Act requests a status transition. Only the actions offered for the
// order's status and the user's side reach the API.
func (s *orderService) Act(ctx context.Context, role models.OrderRole, order models.Order, action models.OrderAction) error {
	if !action.Valid() {
		return invalid(fmt.Sprintf("unknown order action %q", action))
	}
	if !order.Allows(role, action) {
		return invalid(fmt.Sprintf("cannot %s an order that is %s", action, order.Status))
	}

	path := "/orders/" + strconv.FormatInt(order.ID, 10) + "/" + string(action)
	res := s.gw.Call(ctx, path, &client.RequestOptions{
		Method:        http.MethodPost,
		FallbackError: "Order update failed",
	})
	if err := res.Err(); err != nil {
		return err
	}
	s.log.Info(ctx, "order updated", "order_id", order.ID, "action", action)
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/secondwear/internal/client/models"
)

func parseRole(args []string) (models.OrderRole, []string) {
	if len(args) > 0 {
		if r := models.OrderRole(strings.ToLower(args[0])); r.Valid() {
			return r, args[1:]
		}
	}
	return models.RoleBuying, args
}

// Orders lists orders: orders [buying|selling].
func (a *App) Orders(ctx context.Context, args []string) error {
	if a.orders == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	role, _ := parseRole(args)

	list, err := a.orders.List(ctx, role)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No %s orders\n", role)
		return nil
	}
	for _, o := range list {
		title := ""
		if o.Item != nil {
			title = o.Item.Title
		}
		line := fmt.Sprintf("#%d %s | %.2f %s | %s", o.ID, title, o.TotalAmount, o.Currency, o.Status)
		if o.TrackingNumber != "" {
			line += " | tracking " + o.TrackingNumber
		}
		if actions := o.Actions(role); len(actions) > 0 {
			names := make([]string, len(actions))
			for i, act := range actions {
				names[i] = string(act)
			}
			line += " | actions: " + strings.Join(names, ", ")
		}
		a.printf("%s\n", line)
	}
	return nil
}

// Order applies an action: order [buying|selling] <id> <action>.
func (a *App) Order(ctx context.Context, args []string) error {
	if a.orders == nil {
		return errUnavailable
	}
	if err := a.requireLogin(); err != nil {
		return err
	}
	role, rest := parseRole(args)
	if len(rest) != 2 {
		return errors.New("usage: order [buying|selling] <order-id> <ship|confirm-delivery|cancel>")
	}
	id, err := parseID(rest, "order [buying|selling] <order-id> <action>")
	if err != nil {
		return err
	}
	action := models.OrderAction(strings.ToLower(rest[1]))

	list, err := a.orders.List(ctx, role)
	if err != nil {
		return err
	}
	for _, o := range list {
		if o.ID != id {
			continue
		}
		if err := a.orders.Act(ctx, role, o, action); err != nil {
			return err
		}
		a.printf("Order #%d: %s done\n", id, action)
		return nil
	}
	return fmt.Errorf("order #%d not found in %s orders", id, role)
}

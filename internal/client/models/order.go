package models

// OrderStatus is the lifecycle stage of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderAction is a transition requested through POST /orders/{id}/{action}.
type OrderAction string

const (
	OrderActionShip            OrderAction = "ship"
	OrderActionConfirmDelivery OrderAction = "confirm-delivery"
	OrderActionCancel          OrderAction = "cancel"
)

// Valid reports whether a is one of the known order actions.
func (a OrderAction) Valid() bool {
	switch a {
	case OrderActionShip, OrderActionConfirmDelivery, OrderActionCancel:
		return true
	}
	return false
}

// OrderRole is the side of the order the current user is on.
type OrderRole string

const (
	RoleBuying  OrderRole = "buying"
	RoleSelling OrderRole = "selling"
)

func (r OrderRole) Valid() bool {
	return r == RoleBuying || r == RoleSelling
}

type ShippingAddress struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Emirate string `json:"emirate,omitempty"`
}

type Order struct {
	ID              int64            `json:"id"`
	Item            *Item            `json:"item,omitempty"`
	Buyer           *User            `json:"buyer,omitempty"`
	Seller          *User            `json:"seller,omitempty"`
	Status          OrderStatus      `json:"status"`
	TotalAmount     float64          `json:"total_amount"`
	Currency        string           `json:"currency,omitempty"`
	PaymentMethod   string           `json:"payment_method,omitempty"`
	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty"`
	TrackingNumber  string           `json:"tracking_number,omitempty"`
	CreatedAt       string           `json:"created_at,omitempty"`
}

// Actions lists what the user on the given side may do with the order in
// its current status. Buyers confirm delivered orders, sellers ship paid
// ones and either side may cancel a pending order.
func (o Order) Actions(role OrderRole) []OrderAction {
	var out []OrderAction
	switch {
	case role == RoleBuying && o.Status == OrderDelivered:
		out = append(out, OrderActionConfirmDelivery)
	case role == RoleSelling && o.Status == OrderPaid:
		out = append(out, OrderActionShip)
	}
	if o.Status == OrderPending {
		out = append(out, OrderActionCancel)
	}
	return out
}

// Allows reports whether action is available to role.
func (o Order) Allows(role OrderRole, action OrderAction) bool {
	for _, a := range o.Actions(role) {
		if a == action {
			return true
		}
	}
	return false
}

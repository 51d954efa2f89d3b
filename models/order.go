package models

import (
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting handling
	OrderStatusProcessing OrderStatus = "processing" // Being prepared
	OrderStatusCompleted  OrderStatus = "completed"  // Fulfilled
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled; orders are never deleted
)

// ParseOrderStatus maps a string to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch strings.ToLower(s) {
	case string(OrderStatusPending):
		return OrderStatusPending, nil
	case string(OrderStatusProcessing):
		return OrderStatusProcessing, nil
	case string(OrderStatusCompleted):
		return OrderStatusCompleted, nil
	case string(OrderStatusCancelled):
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// OrderItem is a snapshot of a cart line taken at checkout time. It is
// decoupled from the live Product so later catalog edits do not change
// historical orders.
type OrderItem struct {
	ProductID    string `json:"product_id" firestore:"productId"`
	Title        string `json:"title" firestore:"title"`
	Price        string `json:"price" firestore:"price"`
	Quantity     int    `json:"quantity" firestore:"quantity"`
	SelectedSize string `json:"selected_size,omitempty" firestore:"selectedSize,omitempty"`
	Image        string `json:"image" firestore:"image"`
	Category     string `json:"category" firestore:"category"`
}

// Order is a document in the "orders" collection.
type Order struct {
	ID              string      `json:"id" firestore:"-"`
	UserID          string      `json:"user_id,omitempty" firestore:"userId"`
	IsGuest         bool        `json:"is_guest" firestore:"isGuest"`
	CustomerName    string      `json:"customer_name" firestore:"customerName"`
	CustomerEmail   string      `json:"customer_email" firestore:"customerEmail"`
	CustomerPhone   string      `json:"customer_phone" firestore:"customerPhone"`
	CustomerAddress string      `json:"customer_address,omitempty" firestore:"customerAddress,omitempty"`
	Items           []OrderItem `json:"items" firestore:"items"`
	TotalAmount     string      `json:"total_amount" firestore:"totalAmount"`
	Status          OrderStatus `json:"status" firestore:"status"`
	CreatedAt       time.Time   `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time   `json:"updated_at" firestore:"updatedAt"`
}

package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/atelierline/storefront-api/models"
)

const ordersCollection = "orders"

// OrdersService reads and writes the "orders" collection. Orders are never
// deleted: cancellation is a status transition.
type OrdersService struct {
	FS *firestore.Client
}

func NewOrdersService(fs *firestore.Client) *OrdersService {
	return &OrdersService{FS: fs}
}

// All returns every order, newest first.
func (s *OrdersService) All(ctx context.Context) ([]models.Order, error) {
	iter := s.FS.Collection(ordersCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var orders []models.Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch orders: %w", err)
		}
		var o models.Order
		if err := doc.DataTo(&o); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", doc.Ref.ID, err)
		}
		o.ID = doc.Ref.ID
		orders = append(orders, o)
	}
	return orders, nil
}

// ForUser returns the orders placed by one user, newest first.
func (s *OrdersService) ForUser(ctx context.Context, userID string) ([]models.Order, error) {
	iter := s.FS.Collection(ordersCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var orders []models.Order
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch user orders: %w", err)
		}
		var o models.Order
		if err := doc.DataTo(&o); err != nil {
			return nil, fmt.Errorf("decode order %s: %w", doc.Ref.ID, err)
		}
		o.ID = doc.Ref.ID
		orders = append(orders, o)
	}
	return orders, nil
}

// Get returns a single order by document ID.
func (s *OrdersService) Get(ctx context.Context, id string) (models.Order, error) {
	doc, err := s.FS.Collection(ordersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, fmt.Errorf("fetch order: %w", err)
	}
	var o models.Order
	if err := doc.DataTo(&o); err != nil {
		return models.Order{}, fmt.Errorf("decode order %s: %w", doc.Ref.ID, err)
	}
	o.ID = doc.Ref.ID
	return o, nil
}

// Create inserts an order. The backend assigns the document ID.
func (s *OrdersService) Create(ctx context.Context, o models.Order) (models.Order, error) {
	ref := s.FS.Collection(ordersCollection).NewDoc()

	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := ref.Set(ctx, o); err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}
	o.ID = ref.ID
	return o, nil
}

// UpdateStatus patches only the status and updated-timestamp fields.
func (s *OrdersService) UpdateStatus(ctx context.Context, id string, st models.OrderStatus) error {
	_, err := s.FS.Collection(ordersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: st},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// Cancel is the deletion path: instead of removing the document, the order is
// forced into the cancelled status.
func (s *OrdersService) Cancel(ctx context.Context, id string) error {
	return s.UpdateStatus(ctx, id, models.OrderStatusCancelled)
}

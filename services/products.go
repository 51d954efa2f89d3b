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

const productsCollection = "products"

// ProductsService reads and writes the "products" collection.
type ProductsService struct {
	FS *firestore.Client
}

func NewProductsService(fs *firestore.Client) *ProductsService {
	return &ProductsService{FS: fs}
}

// All returns every product, newest first.
func (s *ProductsService) All(ctx context.Context) ([]models.Product, error) {
	iter := s.FS.Collection(productsCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var products []models.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}
		var p models.Product
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode product %s: %w", doc.Ref.ID, err)
		}
		p.ID = doc.Ref.ID
		products = append(products, p)
	}
	return products, nil
}

// Get returns a single product by document ID.
func (s *ProductsService) Get(ctx context.Context, id string) (models.Product, error) {
	doc, err := s.FS.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, fmt.Errorf("fetch product: %w", err)
	}
	var p models.Product
	if err := doc.DataTo(&p); err != nil {
		return models.Product{}, fmt.Errorf("decode product %s: %w", doc.Ref.ID, err)
	}
	p.ID = doc.Ref.ID
	return p, nil
}

// Create inserts a product. The backend assigns the document ID.
func (s *ProductsService) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ref := s.FS.Collection(productsCollection).NewDoc()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := ref.Set(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("add product: %w", err)
	}
	p.ID = ref.ID
	return p, nil
}

// Update overwrites the stored fields of an existing product.
func (s *ProductsService) Update(ctx context.Context, p models.Product) error {
	p.UpdatedAt = time.Now().UTC()
	if _, err := s.FS.Collection(productsCollection).Doc(p.ID).Set(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product document.
func (s *ProductsService) Delete(ctx context.Context, id string) error {
	if _, err := s.FS.Collection(productsCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

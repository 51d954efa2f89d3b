package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/atelierline/storefront-api/models"
)

const usersCollection = "users"

// UsersService reads and writes the "users" profile collection, keyed by the
// identity provider's UID.
type UsersService struct {
	FS *firestore.Client
}

func NewUsersService(fs *firestore.Client) *UsersService {
	return &UsersService{FS: fs}
}

// Get returns the profile document for a UID.
func (s *UsersService) Get(ctx context.Context, uid string) (models.User, error) {
	doc, err := s.FS.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("fetch user: %w", err)
	}
	var u models.User
	if err := doc.DataTo(&u); err != nil {
		return models.User{}, fmt.Errorf("decode user %s: %w", doc.Ref.ID, err)
	}
	u.ID = doc.Ref.ID
	return u, nil
}

// Set writes the full profile document for a UID.
func (s *UsersService) Set(ctx context.Context, uid string, u models.User) error {
	if _, err := s.FS.Collection(usersCollection).Doc(uid).Set(ctx, u); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

// UpdateProfile patches only the provided profile fields.
func (s *UsersService) UpdateProfile(ctx context.Context, uid string, firstName, lastName, phoneNumber *string) error {
	var updates []firestore.Update
	if firstName != nil {
		updates = append(updates, firestore.Update{Path: "firstName", Value: *firstName})
	}
	if lastName != nil {
		updates = append(updates, firestore.Update{Path: "lastName", Value: *lastName})
	}
	if phoneNumber != nil {
		updates = append(updates, firestore.Update{Path: "phoneNumber", Value: *phoneNumber})
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := s.FS.Collection(usersCollection).Doc(uid).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// All returns every profile, newest first.
func (s *UsersService) All(ctx context.Context) ([]models.User, error) {
	iter := s.FS.Collection(usersCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var users []models.User
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("fetch users: %w", err)
		}
		var u models.User
		if err := doc.DataTo(&u); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", doc.Ref.ID, err)
		}
		u.ID = doc.Ref.ID
		users = append(users, u)
	}
	return users, nil
}

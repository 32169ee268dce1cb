package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/apas/pharmacy-system/internal/core/domain"
)

func TestUserRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB)

		age := 41
		user, err := repo.Create(context.Background(), &domain.User{
			Username:     "alice",
			PasswordHash: "hash",
			Role:         domain.RolePatient,
			Age:          &age,
			Identifier:   "AAAA1111BBBB2222",
			CreatedAt:    time.Now(),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID == "" || user.ID == primitive.NilObjectID.Hex() {
			t.Fatalf("expected generated id, got %q", user.ID)
		}
		if user.Identifier != "AAAA1111BBBB2222" || user.Age == nil || *user.Age != 41 {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	mt.Run("duplicate identifier", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: pharmacy.users index: identifier_unique",
		}))
		repo := NewUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Username: "bob", Identifier: "AAAA1111BBBB2222", Role: domain.RoleDoctor})
		if !errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})
}

func TestUserRepository_FindByIdentifier(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, mt.DB.Name()+"."+collectionUsers, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "username", Value: "alice"},
			{Key: "password_hash", Value: "hash"},
			{Key: "role", Value: "patient"},
			{Key: "identifier", Value: "AAAA1111BBBB2222"},
			{Key: "created_at", Value: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)},
		}))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByIdentifier(context.Background(), "AAAA1111BBBB2222")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != oid.Hex() || user.Role != domain.RolePatient || user.PasswordHash != "hash" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+collectionUsers, mtest.FirstBatch))
		repo := NewUserRepository(mt.DB)

		if _, err := repo.FindByIdentifier(context.Background(), "ZZZZ9999ZZZZ9999"); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepository_FindByUsernameAndRole(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+collectionUsers, mtest.FirstBatch))
		repo := NewUserRepository(mt.DB)

		if _, err := repo.FindByUsernameAndRole(context.Background(), "ghost", domain.RoleDoctor); !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

package storage

import (
	"context"

	"github.com/sourcecd/warehouse/internal/models"
)

//go:generate mockgen -destination=mock/mock_store.go -package=mock github.com/sourcecd/warehouse/internal/storage Store

type Store interface {
	PopulateDB(ctx context.Context) error
	InitSecKey(ctx context.Context) error
	GetSecKey(ctx context.Context) (string, error)
	RegisterUser(ctx context.Context, user *models.User) error
	SeedUsers(ctx context.Context, users map[string]string) error
	AuthUser(ctx context.Context, user *models.User) error
	SaveJob(ctx context.Context, job *models.Job) error
	ListJobs(ctx context.Context, limit int) ([]models.Job, error)
}

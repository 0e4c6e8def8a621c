// internal/domain/admin/repository.go
package admin

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, a *Admin) (*Admin, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Admin, error)
	FindByUsername(ctx context.Context, username string) (*Admin, error)
	FindByID(ctx context.Context, id int64) (*Admin, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

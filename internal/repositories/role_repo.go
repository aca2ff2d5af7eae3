package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smoraleda/crmcore/internal/database"
	"github.com/smoraleda/crmcore/internal/models"
)

type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(db *database.DB) *RoleRepository {
	return &RoleRepository{pool: db.Pool}
}

func scanRoleRow(scanner rowScanner) (*models.Role, error) {
	var role models.Role

	err := scanner.Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &role, nil
}

func (r *RoleRepository) GetByID(ctx context.Context, id string) (*models.Role, error) {
	query := `SELECT id, name, permissions, created_at FROM roles WHERE id = $1`

	return scanRoleRow(r.pool.QueryRow(ctx, query, id))
}

func (r *RoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := `SELECT id, name, permissions, created_at FROM roles WHERE name = $1`

	return scanRoleRow(r.pool.QueryRow(ctx, query, name))
}

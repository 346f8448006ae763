package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogService manages the service offerings customers can book.
type CatalogService interface {
	CreateService(ctx context.Context, input ServiceInput) (*Service, error)
	GetService(ctx context.Context, serviceID int) (*Service, error)
	GetServices(ctx context.Context) ([]Service, error)
	UpdateService(ctx context.Context, serviceID int, input ServiceInput) (*Service, error)
	DeleteService(ctx context.Context, serviceID int) error
}

type catalogService struct {
	pool *pgxpool.Pool
}

func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

const serviceColumns = `id, service_name, description, inclusions, duration_minutes, may_overlap,
	is_solo, can_be_addon, can_be_standalone, has_sizes, base_price,
	small_price, medium_price, large_price, extra_large_price,
	addon_price, standalone_price, created_at, updated_at`

func scanService(row pgx.Row) (*Service, error) {
	var svc Service
	err := row.Scan(
		&svc.ID, &svc.Name, &svc.Description, &svc.Inclusions, &svc.DurationMinutes, &svc.MayOverlap,
		&svc.IsSolo, &svc.CanBeAddon, &svc.CanBeStandalone, &svc.HasSizes, &svc.BasePrice,
		&svc.SmallPrice, &svc.MediumPrice, &svc.LargePrice, &svc.ExtraLargePrice,
		&svc.AddonPrice, &svc.StandalonePrice, &svc.CreatedAt, &svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if svc.Inclusions == nil {
		svc.Inclusions = []string{}
	}
	return &svc, nil
}

func validateServiceInput(input ServiceInput) error {
	if input.Name == "" {
		return InvalidArgumentf("service name is required")
	}
	if input.DurationMinutes <= 0 {
		return InvalidArgumentf("duration must be positive, got %d minutes", input.DurationMinutes)
	}
	if input.BasePrice.IsNegative() {
		return InvalidArgumentf("base price cannot be negative, got %s", input.BasePrice)
	}
	return nil
}

func (s *catalogService) CreateService(ctx context.Context, input ServiceInput) (*Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}
	if input.Inclusions == nil {
		input.Inclusions = []string{}
	}

	svc, err := scanService(s.pool.QueryRow(ctx, `
		INSERT INTO services (service_name, description, inclusions, duration_minutes, may_overlap,
		                      is_solo, can_be_addon, can_be_standalone, has_sizes, base_price,
		                      small_price, medium_price, large_price, extra_large_price,
		                      addon_price, standalone_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+serviceColumns,
		input.Name, input.Description, input.Inclusions, input.DurationMinutes, input.MayOverlap,
		input.IsSolo, input.CanBeAddon, input.CanBeStandalone, input.HasSizes, input.BasePrice,
		input.SmallPrice, input.MediumPrice, input.LargePrice, input.ExtraLargePrice,
		input.AddonPrice, input.StandalonePrice,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create service %q: %w", input.Name, err)
	}
	return svc, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID int) (*Service, error) {
	svc, err := scanService(s.pool.QueryRow(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE id = $1", serviceID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("service %d not found", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %d: %w", serviceID, err)
	}
	return svc, nil
}

func (s *catalogService) GetServices(ctx context.Context) ([]Service, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+serviceColumns+" FROM services ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

func (s *catalogService) UpdateService(ctx context.Context, serviceID int, input ServiceInput) (*Service, error) {
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}
	if input.Inclusions == nil {
		input.Inclusions = []string{}
	}

	svc, err := scanService(s.pool.QueryRow(ctx, `
		UPDATE services
		SET service_name = $1, description = $2, inclusions = $3, duration_minutes = $4,
		    may_overlap = $5, is_solo = $6, can_be_addon = $7, can_be_standalone = $8,
		    has_sizes = $9, base_price = $10, small_price = $11, medium_price = $12,
		    large_price = $13, extra_large_price = $14, addon_price = $15,
		    standalone_price = $16, updated_at = NOW()
		WHERE id = $17
		RETURNING `+serviceColumns,
		input.Name, input.Description, input.Inclusions, input.DurationMinutes,
		input.MayOverlap, input.IsSolo, input.CanBeAddon, input.CanBeStandalone,
		input.HasSizes, input.BasePrice, input.SmallPrice, input.MediumPrice,
		input.LargePrice, input.ExtraLargePrice, input.AddonPrice,
		input.StandalonePrice, serviceID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("service %d not found", serviceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service %d: %w", serviceID, err)
	}
	return svc, nil
}

func (s *catalogService) DeleteService(ctx context.Context, serviceID int) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM services WHERE id = $1", serviceID)
	if err != nil {
		return fmt.Errorf("failed to delete service %d: %w", serviceID, err)
	}
	if tag.RowsAffected() == 0 {
		return NotFoundf("service %d not found", serviceID)
	}
	return nil
}

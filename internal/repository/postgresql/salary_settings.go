package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type settingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) salary.SettingsRepository {
	return &settingsRepository{db: db}
}

const settingsColumns = `id, tenant_id, version, is_active, car_wash, etisalat, mall, camp, outside,
	last_modified_by, created_at, updated_at`

// settingsColumnFor maps a category to its jsonb column.
var settingsColumnFor = map[salary.Category]string{
	salary.CategoryCarWash:  "car_wash",
	salary.CategoryEtisalat: "etisalat",
	salary.CategoryMall:     "mall",
	salary.CategoryCamp:     "camp",
	salary.CategoryOutside:  "outside",
}

func (r *settingsRepository) GetActive(ctx context.Context, tenantID string) (salary.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + settingsColumns + ` FROM salary_settings WHERE tenant_id = $1 AND is_active`

	s, err := scanSettings(q.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Settings{}, salary.ErrSettingsNotFound
		}
		return salary.Settings{}, fmt.Errorf("failed to get salary settings: %w", err)
	}
	return s, nil
}

func (r *settingsRepository) CreateActive(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	s.IsActive = true
	created, err := r.insert(ctx, s)
	if err != nil {
		if isActiveSettingsConflict(err) {
			return salary.Settings{}, salary.ErrActiveSettingsExists
		}
		return salary.Settings{}, fmt.Errorf("failed to create salary settings: %w", err)
	}
	return created, nil
}

func (r *settingsRepository) UpdateActive(ctx context.Context, s salary.Settings, categories ...salary.Category) (salary.Settings, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()", "last_modified_by = $3"}
	args := []interface{}{s.ID, s.TenantID, s.LastModifiedBy}
	argIdx := 4

	for _, c := range categories {
		column, ok := settingsColumnFor[c]
		if !ok {
			return salary.Settings{}, fmt.Errorf("%w: %q", salary.ErrInvalidCategory, c)
		}
		block, err := s.Category(c)
		if err != nil {
			return salary.Settings{}, err
		}
		raw, err := json.Marshal(block)
		if err != nil {
			return salary.Settings{}, fmt.Errorf("failed to encode %s settings: %w", c, err)
		}
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, raw)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE salary_settings SET %s
		WHERE id = $1 AND tenant_id = $2 AND is_active
		RETURNING %s
	`, strings.Join(setParts, ", "), settingsColumns)

	updated, err := scanSettings(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Settings{}, salary.ErrSettingsNotFound
		}
		return salary.Settings{}, fmt.Errorf("failed to update salary settings: %w", err)
	}
	return updated, nil
}

func (r *settingsRepository) Reset(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	var created salary.Settings

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		// serialise concurrent resets of the same tenant
		if _, err := q.Exec(txCtx, "SELECT pg_advisory_xact_lock(hashtext($1))", s.TenantID); err != nil {
			return fmt.Errorf("failed to lock salary settings: %w", err)
		}

		var maxVersion int
		if err := q.QueryRow(txCtx,
			"SELECT COALESCE(MAX(version), 0) FROM salary_settings WHERE tenant_id = $1", s.TenantID,
		).Scan(&maxVersion); err != nil {
			return fmt.Errorf("failed to read settings version: %w", err)
		}

		if _, err := q.Exec(txCtx,
			"UPDATE salary_settings SET is_active = FALSE, updated_at = NOW() WHERE tenant_id = $1 AND is_active", s.TenantID,
		); err != nil {
			return fmt.Errorf("failed to deactivate salary settings: %w", err)
		}

		s.Version = maxVersion + 1
		s.IsActive = true
		var err error
		created, err = r.insert(txCtx, s)
		if err != nil {
			return fmt.Errorf("failed to insert salary settings: %w", err)
		}
		return nil
	})
	if err != nil {
		return salary.Settings{}, err
	}
	return created, nil
}

func (r *settingsRepository) insert(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	q := GetQuerier(ctx, r.db)

	blocks := make([][]byte, 0, len(salary.Categories))
	for _, c := range salary.Categories {
		block, err := s.Category(c)
		if err != nil {
			return salary.Settings{}, err
		}
		raw, err := json.Marshal(block)
		if err != nil {
			return salary.Settings{}, fmt.Errorf("failed to encode %s settings: %w", c, err)
		}
		blocks = append(blocks, raw)
	}

	query := `
		INSERT INTO salary_settings (id, tenant_id, version, is_active, car_wash, etisalat, mall, camp, outside, last_modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + settingsColumns

	return scanSettings(q.QueryRow(ctx, query,
		uuid.New().String(), s.TenantID, s.Version, s.IsActive,
		blocks[0], blocks[1], blocks[2], blocks[3], blocks[4],
		s.LastModifiedBy,
	))
}

func scanSettings(row pgx.Row) (salary.Settings, error) {
	var (
		s                                   salary.Settings
		carWash, etisalat, mall, camp, outs []byte
	)
	if err := row.Scan(
		&s.ID, &s.TenantID, &s.Version, &s.IsActive,
		&carWash, &etisalat, &mall, &camp, &outs,
		&s.LastModifiedBy, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return salary.Settings{}, err
	}

	for target, raw := range map[any][]byte{
		&s.CarWash:  carWash,
		&s.Etisalat: etisalat,
		&s.Mall:     mall,
		&s.Camp:     camp,
		&s.Outside:  outs,
	} {
		if err := json.Unmarshal(raw, target); err != nil {
			return salary.Settings{}, fmt.Errorf("failed to decode salary settings: %w", err)
		}
	}
	return s, nil
}

func isActiveSettingsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uk_salary_settings_active"
}

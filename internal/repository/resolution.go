package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"sunray/navigator/internal/domain"
)

// Resolution is one finished lookup: what the user picked and what the
// vendor source answered.
type Resolution struct {
	SessionID  string                    `json:"session_id"`
	Vendor     domain.Vendor             `json:"vendor"`
	Path       []string                  `json:"path"`
	Item       domain.Item               `json:"item"`
	Record     domain.AvailabilityRecord `json:"record"`
	ResolvedAt time.Time                 `json:"resolved_at"`
}

type ResolutionRepository interface {
	SaveResolution(ctx context.Context, res *Resolution) error
	LastResolution(ctx context.Context, sessionID string) (*Resolution, error)
}

type resolutionRepository struct {
	db *pgxpool.Pool
}

func NewResolutionRepository(db *pgxpool.Pool) ResolutionRepository {
	return &resolutionRepository{
		db: db,
	}
}

func (r *resolutionRepository) SaveResolution(ctx context.Context, res *Resolution) error {
	query := `
	INSERT INTO resolutions (session_id, vendor, data, resolved_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (session_id)
	DO UPDATE SET vendor = $2, data = $3, resolved_at = $4`
	_, err := r.db.Exec(ctx, query, res.SessionID, res.Vendor.String(), res, res.ResolvedAt)
	if err != nil {
		return fmt.Errorf("failed to save resolution: %w", err)
	}

	return nil
}

func (r *resolutionRepository) LastResolution(ctx context.Context, sessionID string) (*Resolution, error) {
	query := `SELECT data FROM resolutions WHERE session_id = $1`

	var res Resolution
	if err := r.db.QueryRow(ctx, query, sessionID).Scan(&res); err != nil {
		return nil, fmt.Errorf("failed to load resolution for session %s: %w", sessionID, err)
	}

	return &res, nil
}

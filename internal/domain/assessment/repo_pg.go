package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mdscare/mdscare/internal/mds"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const assessmentCols = `id, resident_id, assessment_type, status, reference_date,
	data, sections_completed, caa_triggers, triggers_evaluated_at,
	completed_at, submitted_at, locked_at, created_at, updated_at`

// The data, sections_completed and caa_triggers columns are JSONB.
func (r *repoPG) scan(row pgx.Row) (*Assessment, error) {
	var a Assessment
	var data, sections, triggers []byte
	err := row.Scan(&a.ID, &a.ResidentID, &a.Type, &a.Status, &a.ReferenceDate,
		&data, &sections, &triggers, &a.TriggersEvaluatedAt,
		&a.CompletedAt, &a.SubmittedAt, &a.LockedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &a.Data); err != nil {
		return nil, fmt.Errorf("unmarshal assessment data: %w", err)
	}
	if err := json.Unmarshal(sections, &a.SectionsCompleted); err != nil {
		return nil, fmt.Errorf("unmarshal sections_completed: %w", err)
	}
	if triggers != nil {
		if err := json.Unmarshal(triggers, &a.CaaTriggers); err != nil {
			return nil, fmt.Errorf("unmarshal caa_triggers: %w", err)
		}
	}
	return &a, nil
}

func (r *repoPG) marshalCols(a *Assessment) (data, sections, triggers []byte, err error) {
	if a.Data == nil {
		a.Data = mds.Data{}
	}
	if a.SectionsCompleted == nil {
		a.SectionsCompleted = map[string]bool{}
	}
	if data, err = json.Marshal(a.Data); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal assessment data: %w", err)
	}
	if sections, err = json.Marshal(a.SectionsCompleted); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal sections_completed: %w", err)
	}
	if a.CaaTriggers != nil {
		if triggers, err = json.Marshal(a.CaaTriggers); err != nil {
			return nil, nil, nil, fmt.Errorf("marshal caa_triggers: %w", err)
		}
	}
	return data, sections, triggers, nil
}

func (r *repoPG) Create(ctx context.Context, a *Assessment) error {
	a.ID = uuid.New()
	data, sections, triggers, err := r.marshalCols(a)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO assessment (id, resident_id, assessment_type, status, reference_date,
			data, sections_completed, caa_triggers)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.ResidentID, a.Type, a.Status, a.ReferenceDate, data, sections, triggers)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+assessmentCols+` FROM assessment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Assessment) error {
	data, sections, triggers, err := r.marshalCols(a)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE assessment SET status=$2, data=$3, sections_completed=$4, caa_triggers=$5,
			triggers_evaluated_at=$6, completed_at=$7, submitted_at=$8, locked_at=$9,
			updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Status, data, sections, triggers,
		a.TriggersEvaluatedAt, a.CompletedAt, a.SubmittedAt, a.LockedAt)
	return err
}

func (r *repoPG) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Assessment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM assessment WHERE resident_id = $1`, residentID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+assessmentCols+` FROM assessment
		WHERE resident_id = $1 ORDER BY reference_date DESC LIMIT $2 OFFSET $3`,
		residentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		a, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

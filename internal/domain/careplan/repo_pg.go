package careplan

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type invRepoPG struct{ pool *pgxpool.Pool }

func NewInvestigationRepoPG(pool *pgxpool.Pool) InvestigationRepository {
	return &invRepoPG{pool: pool}
}

const invCols = `id, resident_id, assessment_id, caa_type, trigger_items, rationale,
	status, findings, proceed, completed_at, created_at, updated_at`

func (r *invRepoPG) scan(row pgx.Row) (*Investigation, error) {
	var inv Investigation
	err := row.Scan(&inv.ID, &inv.ResidentID, &inv.AssessmentID, &inv.CaaType,
		&inv.TriggerItems, &inv.Rationale, &inv.Status, &inv.Findings,
		&inv.Proceed, &inv.CompletedAt, &inv.CreatedAt, &inv.UpdatedAt)
	return &inv, err
}

func (r *invRepoPG) Create(ctx context.Context, inv *Investigation) error {
	inv.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO caa_investigation (id, resident_id, assessment_id, caa_type,
			trigger_items, rationale, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		inv.ID, inv.ResidentID, inv.AssessmentID, inv.CaaType,
		inv.TriggerItems, inv.Rationale, inv.Status)
	return err
}

func (r *invRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Investigation, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+invCols+` FROM caa_investigation WHERE id = $1`, id))
}

func (r *invRepoPG) Update(ctx context.Context, inv *Investigation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE caa_investigation SET status=$2, findings=$3, proceed=$4,
			completed_at=$5, updated_at=NOW()
		WHERE id = $1`,
		inv.ID, inv.Status, inv.Findings, inv.Proceed, inv.CompletedAt)
	return err
}

func (r *invRepoPG) ListByAssessment(ctx context.Context, assessmentID uuid.UUID) ([]*Investigation, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+invCols+` FROM caa_investigation
		WHERE assessment_id = $1 ORDER BY caa_type`, assessmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Investigation
	for rows.Next() {
		inv, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, inv)
	}
	return items, nil
}

func (r *invRepoPG) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*Investigation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM caa_investigation WHERE resident_id = $1`, residentID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+invCols+` FROM caa_investigation
		WHERE resident_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		residentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Investigation
	for rows.Next() {
		inv, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	return items, total, nil
}

type entryRepoPG struct{ pool *pgxpool.Pool }

func NewEntryRepoPG(pool *pgxpool.Pool) EntryRepository {
	return &entryRepoPG{pool: pool}
}

const entryCols = `id, resident_id, investigation_id, problem, goal, interventions,
	status, target_date, created_at, updated_at`

func (r *entryRepoPG) scan(row pgx.Row) (*CarePlanEntry, error) {
	var e CarePlanEntry
	err := row.Scan(&e.ID, &e.ResidentID, &e.InvestigationID, &e.Problem,
		&e.Goal, &e.Interventions, &e.Status, &e.TargetDate,
		&e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *entryRepoPG) Create(ctx context.Context, e *CarePlanEntry) error {
	e.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO care_plan_entry (id, resident_id, investigation_id, problem,
			goal, interventions, status, target_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		e.ID, e.ResidentID, e.InvestigationID, e.Problem, e.Goal,
		e.Interventions, e.Status, e.TargetDate)
	return err
}

func (r *entryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*CarePlanEntry, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+entryCols+` FROM care_plan_entry WHERE id = $1`, id))
}

func (r *entryRepoPG) Update(ctx context.Context, e *CarePlanEntry) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE care_plan_entry SET problem=$2, goal=$3, interventions=$4,
			status=$5, target_date=$6, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.Problem, e.Goal, e.Interventions, e.Status, e.TargetDate)
	return err
}

func (r *entryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM care_plan_entry WHERE id = $1`, id)
	return err
}

func (r *entryRepoPG) ListByResident(ctx context.Context, residentID uuid.UUID, limit, offset int) ([]*CarePlanEntry, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM care_plan_entry WHERE resident_id = $1`, residentID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+entryCols+` FROM care_plan_entry
		WHERE resident_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		residentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*CarePlanEntry
	for rows.Next() {
		e, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	return items, total, nil
}

package resident

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const residentCols = `id, first_name, last_name, birth_date, admission_date,
	discharge_date, room, status, created_at, updated_at`

func (r *repoPG) scan(row pgx.Row) (*Resident, error) {
	var res Resident
	err := row.Scan(&res.ID, &res.FirstName, &res.LastName, &res.BirthDate,
		&res.AdmissionDate, &res.DischargeDate, &res.Room, &res.Status,
		&res.CreatedAt, &res.UpdatedAt)
	return &res, err
}

func (r *repoPG) Create(ctx context.Context, res *Resident) error {
	res.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO resident (id, first_name, last_name, birth_date, admission_date,
			discharge_date, room, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		res.ID, res.FirstName, res.LastName, res.BirthDate, res.AdmissionDate,
		res.DischargeDate, res.Room, res.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Resident, error) {
	return r.scan(r.pool.QueryRow(ctx, `SELECT `+residentCols+` FROM resident WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, res *Resident) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE resident SET first_name=$2, last_name=$3, birth_date=$4,
			admission_date=$5, discharge_date=$6, room=$7, status=$8, updated_at=NOW()
		WHERE id = $1`,
		res.ID, res.FirstName, res.LastName, res.BirthDate, res.AdmissionDate,
		res.DischargeDate, res.Room, res.Status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM resident WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Resident, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resident`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+residentCols+` FROM resident ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Resident
	for rows.Next() {
		res, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, res)
	}
	return items, total, nil
}

func (r *repoPG) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Resident, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resident WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+residentCols+` FROM resident WHERE status = $1 ORDER BY last_name, first_name LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Resident
	for rows.Next() {
		res, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, res)
	}
	return items, total, nil
}

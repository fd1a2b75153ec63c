package bed

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leitos/leitos/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type BedRepoPG struct {
	pool *pgxpool.Pool
}

func NewBedRepoPG(pool *pgxpool.Pool) *BedRepoPG {
	return &BedRepoPG{pool: pool}
}

func (r *BedRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const bedCols = `id, code, kind, status, patient_id, created_at, updated_at`

func scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.Code, &b.Kind, &b.Status, &b.PatientID, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

func (r *BedRepoPG) Create(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO beds (id, code, kind, status, patient_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		b.ID, b.Code, b.Kind, b.Status, b.PatientID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (r *BedRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` FROM beds WHERE id = $1`, id))
}

func (r *BedRepoPG) GetForUpdate(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` FROM beds WHERE id = $1 FOR UPDATE`, id))
}

func (r *BedRepoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*Bed, error) {
	return scanBed(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bedCols+` FROM beds WHERE patient_id = $1`, patientID))
}

func (r *BedRepoPG) Update(ctx context.Context, b *Bed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE beds SET
			code = $2, kind = $3, status = $4, patient_id = $5, updated_at = NOW()
		WHERE id = $1`,
		b.ID, b.Code, b.Kind, b.Status, b.PatientID,
	)
	return err
}

func (r *BedRepoPG) List(ctx context.Context, limit, offset int) ([]*View, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM beds`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT b.id, b.code, b.kind, b.status, b.patient_id, b.created_at, b.updated_at, p.name
		FROM beds b
		LEFT JOIN patients p ON p.id = b.patient_id
		ORDER BY b.code ASC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*View
	for rows.Next() {
		var v View
		if err := rows.Scan(&v.ID, &v.Code, &v.Kind, &v.Status, &v.PatientID,
			&v.CreatedAt, &v.UpdatedAt, &v.OccupantName); err != nil {
			return nil, 0, err
		}
		items = append(items, &v)
	}
	return items, total, rows.Err()
}

func (r *BedRepoPG) CountOccupied(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM beds WHERE status = 'OCCUPIED'`).Scan(&n)
	return n, err
}

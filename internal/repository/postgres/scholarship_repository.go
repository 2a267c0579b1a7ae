package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/scholarship"
	"scholarfind/internal/domain/user"
)

type ScholarshipRepository struct {
	db *sql.DB
}

func NewScholarshipRepository(db *sql.DB) *ScholarshipRepository {
	return &ScholarshipRepository{db: db}
}

const scholarshipColumns = `s.id, s.created_by, s.title, s.description, s.provider, s.amount, s.category, s.deadline,
	s.application_url, s.requirements, s.eligibility_min_gpa, s.eligibility_majors, s.eligibility_universities,
	s.eligibility_graduation_year, s.eligibility_other, s.is_active, s.created_at, s.updated_at`

func (r *ScholarshipRepository) Create(ctx context.Context, s scholarship.Scholarship) (*scholarship.Scholarship, error) {
	s.ID = common.NewUUID()
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO scholarships (id, created_by, title, description, provider, amount, category, deadline,
		application_url, requirements, eligibility_min_gpa, eligibility_majors, eligibility_universities,
		eligibility_graduation_year, eligibility_other, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		s.ID, s.CreatedBy, s.Title, s.Description, s.Provider, s.Amount, s.Category, s.Deadline,
		s.ApplicationURL, pq.Array(s.Requirements), s.Eligibility.MinGPA, pq.Array(s.Eligibility.Majors),
		pq.Array(s.Eligibility.Universities), s.Eligibility.GraduationYear, s.Eligibility.Other,
		s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create scholarship", err)
	}
	return &s, nil
}

func (r *ScholarshipRepository) Update(ctx context.Context, s scholarship.Scholarship) (*scholarship.Scholarship, error) {
	s.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE scholarships SET title = $1, description = $2, provider = $3, amount = $4,
		category = $5, deadline = $6, application_url = $7, requirements = $8, eligibility_min_gpa = $9,
		eligibility_majors = $10, eligibility_universities = $11, eligibility_graduation_year = $12,
		eligibility_other = $13, is_active = $14, updated_at = $15
		WHERE id = $16 AND created_by = $17`,
		s.Title, s.Description, s.Provider, s.Amount, s.Category, s.Deadline, s.ApplicationURL,
		pq.Array(s.Requirements), s.Eligibility.MinGPA, pq.Array(s.Eligibility.Majors),
		pq.Array(s.Eligibility.Universities), s.Eligibility.GraduationYear, s.Eligibility.Other,
		s.IsActive, s.UpdatedAt, s.ID, s.CreatedBy)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update scholarship", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "scholarship not found", sql.ErrNoRows)
	}
	return &s, nil
}

func (r *ScholarshipRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scholarships WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete scholarship", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "scholarship not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ScholarshipRepository) GetByID(ctx context.Context, id common.UUID) (*scholarship.Scholarship, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scholarshipColumns+` FROM scholarships s WHERE s.id = $1`, id)
	s, err := scanScholarship(row.Scan)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ScholarshipRepository) GetDetail(ctx context.Context, id common.UUID) (*scholarship.WithOwner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scholarshipColumns+`, u.id, u.name, u.email
		FROM scholarships s
		LEFT JOIN users u ON u.id = s.created_by
		WHERE s.id = $1`, id)
	item, err := scanScholarshipWithOwner(row.Scan)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *ScholarshipRepository) ListOpen(ctx context.Context, f scholarship.Filter, limit, offset int) ([]scholarship.WithOwner, error) {
	where, args := openFilter(f)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+scholarshipColumns+`, u.id, u.name, u.email
		FROM scholarships s
		LEFT JOIN users u ON u.id = s.created_by
		WHERE %s
		ORDER BY s.deadline ASC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list scholarships", err)
	}
	defer rows.Close()
	var items []scholarship.WithOwner
	for rows.Next() {
		item, err := scanScholarshipWithOwner(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list scholarships", err)
	}
	return items, nil
}

func (r *ScholarshipRepository) CountOpen(ctx context.Context, f scholarship.Filter) (int, error) {
	where, args := openFilter(f)
	var total int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM scholarships s WHERE %s`, where), args...).Scan(&total)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count scholarships", err)
	}
	return total, nil
}

func (r *ScholarshipRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]scholarship.Scholarship, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+scholarshipColumns+` FROM scholarships s
		WHERE s.created_by = $1 ORDER BY s.created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list owned scholarships", err)
	}
	defer rows.Close()
	var items []scholarship.Scholarship
	for rows.Next() {
		s, err := scanScholarship(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list owned scholarships", err)
	}
	return items, nil
}

// openFilter renders the public-listing predicate: active, future deadline,
// plus the optional search/category/amount narrowing. Text relevance is
// delegated to Postgres full-text search over title, description and provider.
func openFilter(f scholarship.Filter) (string, []any) {
	clauses := []string{"s.is_active", "s.deadline >= NOW()"}
	var args []any
	if search := strings.TrimSpace(f.Search); search != "" {
		args = append(args, search)
		clauses = append(clauses, fmt.Sprintf(
			`to_tsvector('english', s.title || ' ' || s.description || ' ' || s.provider) @@ plainto_tsquery('english', $%d)`, len(args)))
	}
	if f.Category != "" && f.Category != "All" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("s.category = $%d", len(args)))
	}
	if f.MinAmount != nil {
		args = append(args, *f.MinAmount)
		clauses = append(clauses, fmt.Sprintf("s.amount >= $%d", len(args)))
	}
	if f.MaxAmount != nil {
		args = append(args, *f.MaxAmount)
		clauses = append(clauses, fmt.Sprintf("s.amount <= $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanScholarship(scan func(dest ...any) error) (*scholarship.Scholarship, error) {
	var s scholarship.Scholarship
	var minGPA sql.NullFloat64
	var gradYear sql.NullInt64
	err := scan(&s.ID, &s.CreatedBy, &s.Title, &s.Description, &s.Provider, &s.Amount, &s.Category, &s.Deadline,
		&s.ApplicationURL, pq.Array(&s.Requirements), &minGPA, pq.Array(&s.Eligibility.Majors),
		pq.Array(&s.Eligibility.Universities), &gradYear, &s.Eligibility.Other, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "scholarship not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to scan scholarship", err)
	}
	if minGPA.Valid {
		s.Eligibility.MinGPA = &minGPA.Float64
	}
	if gradYear.Valid {
		year := int(gradYear.Int64)
		s.Eligibility.GraduationYear = &year
	}
	return &s, nil
}

func scanScholarshipWithOwner(scan func(dest ...any) error) (*scholarship.WithOwner, error) {
	var s scholarship.Scholarship
	var minGPA sql.NullFloat64
	var gradYear sql.NullInt64
	var ownerID, ownerName, ownerEmail sql.NullString
	err := scan(&s.ID, &s.CreatedBy, &s.Title, &s.Description, &s.Provider, &s.Amount, &s.Category, &s.Deadline,
		&s.ApplicationURL, pq.Array(&s.Requirements), &minGPA, pq.Array(&s.Eligibility.Majors),
		pq.Array(&s.Eligibility.Universities), &gradYear, &s.Eligibility.Other, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&ownerID, &ownerName, &ownerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "scholarship not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to scan scholarship", err)
	}
	if minGPA.Valid {
		s.Eligibility.MinGPA = &minGPA.Float64
	}
	if gradYear.Valid {
		year := int(gradYear.Int64)
		s.Eligibility.GraduationYear = &year
	}
	item := &scholarship.WithOwner{Scholarship: s}
	if ownerID.Valid {
		item.Owner = &user.Summary{ID: common.UUID(ownerID.String), Name: ownerName.String, Email: ownerEmail.String}
	}
	return item, nil
}

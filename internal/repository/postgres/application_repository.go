package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"scholarfind/internal/common"
	"scholarfind/internal/domain/application"
	"scholarfind/internal/domain/scholarship"
	"scholarfind/internal/domain/user"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `a.id, a.scholarship_id, a.applicant_id, a.status, a.personal_statement, a.additional_info, a.documents, a.submitted_at, a.updated_at`

// detailQuery joins summaries of the scholarship and the applicant. Both joins
// are LEFT: a scholarship may have been deleted after submission.
const detailQuery = `SELECT ` + applicationColumns + `,
		s.id, s.title, s.provider, s.amount, s.category, s.deadline,
		u.id, u.name, u.email, u.university, u.major, u.gpa
	FROM applications a
	LEFT JOIN scholarships s ON s.id = a.scholarship_id
	LEFT JOIN users u ON u.id = a.applicant_id`

func (r *ApplicationRepository) Create(ctx context.Context, a application.Application) (*application.Application, error) {
	a.ID = common.NewUUID()
	now := time.Now().UTC()
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = now
	}
	a.UpdatedAt = now
	if a.Documents == nil {
		a.Documents = []application.Document{}
	}
	docs, err := json.Marshal(a.Documents)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode documents", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO applications (id, scholarship_id, applicant_id, status, personal_statement, additional_info, documents, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.ScholarshipID, a.ApplicantID, a.Status, a.PersonalStatement, a.AdditionalInfo, docs, a.SubmittedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeDuplicate, "you have already applied to this scholarship", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &a, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	return scanApplication(row.Scan)
}

func (r *ApplicationRepository) GetDetail(ctx context.Context, id common.UUID) (*application.WithDetails, error) {
	row := r.db.QueryRowContext(ctx, detailQuery+` WHERE a.id = $1`, id)
	return scanApplicationDetail(row.Scan)
}

func (r *ApplicationRepository) FindByScholarshipAndApplicant(ctx context.Context, scholarshipID, applicantID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a
		WHERE a.scholarship_id = $1 AND a.applicant_id = $2`, scholarshipID, applicantID)
	return scanApplication(row.Scan)
}

func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.WithDetails, error) {
	rows, err := r.db.QueryContext(ctx, detailQuery+` WHERE a.applicant_id = $1 ORDER BY a.submitted_at DESC`, applicantID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return collectDetails(rows)
}

func (r *ApplicationRepository) ListByScholarships(ctx context.Context, scholarshipIDs []common.UUID) ([]application.WithDetails, error) {
	ids := make([]string, 0, len(scholarshipIDs))
	for _, id := range scholarshipIDs {
		ids = append(ids, id.String())
	}
	rows, err := r.db.QueryContext(ctx, detailQuery+` WHERE a.scholarship_id = ANY($1) ORDER BY a.submitted_at DESC`, pq.Array(ids))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list received applications", err)
	}
	return collectDetails(rows)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	updatedAt := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, updatedAt, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return nil
}

func collectDetails(rows *sql.Rows) ([]application.WithDetails, error) {
	defer rows.Close()
	var items []application.WithDetails
	for rows.Next() {
		item, err := scanApplicationDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}

func scanApplication(scan func(dest ...any) error) (*application.Application, error) {
	var a application.Application
	var docs []byte
	err := scan(&a.ID, &a.ScholarshipID, &a.ApplicantID, &a.Status, &a.PersonalStatement, &a.AdditionalInfo, &docs, &a.SubmittedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
	}
	if err := json.Unmarshal(docs, &a.Documents); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode documents", err)
	}
	return &a, nil
}

func scanApplicationDetail(scan func(dest ...any) error) (*application.WithDetails, error) {
	var a application.Application
	var docs []byte
	var schID, schTitle, schProvider, schCategory sql.NullString
	var schAmount sql.NullFloat64
	var schDeadline sql.NullTime
	var appID, appName, appEmail, appUniversity, appMajor sql.NullString
	var appGPA sql.NullFloat64
	err := scan(&a.ID, &a.ScholarshipID, &a.ApplicantID, &a.Status, &a.PersonalStatement, &a.AdditionalInfo, &docs, &a.SubmittedAt, &a.UpdatedAt,
		&schID, &schTitle, &schProvider, &schAmount, &schCategory, &schDeadline,
		&appID, &appName, &appEmail, &appUniversity, &appMajor, &appGPA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
	}
	if err := json.Unmarshal(docs, &a.Documents); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to decode documents", err)
	}
	item := &application.WithDetails{Application: a}
	if schID.Valid {
		item.Scholarship = &scholarship.Summary{
			ID:       common.UUID(schID.String),
			Title:    schTitle.String,
			Provider: schProvider.String,
			Amount:   schAmount.Float64,
			Category: scholarship.Category(schCategory.String),
			Deadline: schDeadline.Time,
		}
	}
	if appID.Valid {
		item.Applicant = &user.Summary{
			ID:         common.UUID(appID.String),
			Name:       appName.String,
			Email:      appEmail.String,
			University: appUniversity.String,
			Major:      appMajor.String,
		}
		if appGPA.Valid {
			item.Applicant.GPA = &appGPA.Float64
		}
	}
	return item, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// lib/pq surfaces the same class when used as the driver in tests.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/corelend/command_audit_app/internal/apperrors"
	"github.com/corelend/command_audit_app/internal/core/domain"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	"github.com/corelend/command_audit_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository serves the read-side audit queries. Display names are
// resolved with LEFT JOINs at query time; the write model stays normalized.
type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit trail queries.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditReader {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditReader = (*PgxAuditRepository)(nil)

// auditSelect is the shared projection for audit entries. commandAsJson is
// substituted per query because attaching the payload is optional.
const auditSelect = `
	SELECT cs.command_id, cs.action_name, cs.entity_name, cs.resource_id, cs.subresource_id,
	       cs.maker_id, mk.username AS maker, cs.made_on_date,
	       ck.username AS checker, cs.checked_on_date, cs.processing_result,
	       l.office_name, l.client_name, l.account_no,
	       %s
	FROM command_sources cs
	JOIN app_users mk ON mk.user_id = cs.maker_id
	LEFT JOIN app_users ck ON ck.user_id = cs.checker_id
	LEFT JOIN loans l ON l.loan_id = cs.resource_id
`

// buildCriteriaWhere renders the structured criteria as parameterized WHERE
// clauses. Filters combine conjunctively; absent filters add no clause.
func buildCriteriaWhere(criteria domain.AuditSearchCriteria, args []any) ([]string, []any) {
	var clauses []string

	if criteria.ActionName != nil {
		args = append(args, *criteria.ActionName)
		clauses = append(clauses, fmt.Sprintf("cs.action_name = $%d", len(args)))
	}
	if criteria.EntityName != nil {
		args = append(args, *criteria.EntityName+"%")
		clauses = append(clauses, fmt.Sprintf("cs.entity_name LIKE $%d", len(args)))
	}
	if criteria.ResourceID != nil {
		args = append(args, *criteria.ResourceID)
		clauses = append(clauses, fmt.Sprintf("cs.resource_id = $%d", len(args)))
	}
	if criteria.MakerID != nil {
		args = append(args, *criteria.MakerID)
		clauses = append(clauses, fmt.Sprintf("cs.maker_id = $%d", len(args)))
	}
	if criteria.MadeOnDateFrom != nil {
		args = append(args, *criteria.MadeOnDateFrom)
		clauses = append(clauses, fmt.Sprintf("cs.made_on_date >= $%d", len(args)))
	}
	if criteria.MadeOnDateTo != nil {
		args = append(args, *criteria.MadeOnDateTo)
		clauses = append(clauses, fmt.Sprintf("cs.made_on_date <= $%d", len(args)))
	}
	if criteria.ProcessingResult != nil {
		args = append(args, string(*criteria.ProcessingResult))
		clauses = append(clauses, fmt.Sprintf("cs.processing_result = $%d", len(args)))
	}

	return clauses, args
}

func scanAuditEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		err := rows.Scan(
			&e.CommandID,
			&e.ActionName,
			&e.EntityName,
			&e.ResourceID,
			&e.SubresourceID,
			&e.MakerID,
			&e.Maker,
			&e.MadeOnDate,
			&e.Checker,
			&e.CheckedOnDate,
			&e.ProcessingResult,
			&e.OfficeName,
			&e.ClientName,
			&e.LoanAccountNo,
			&e.CommandAsJSON,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read audit entries", err)
	}
	return entries, nil
}

func payloadColumn(includeJSON bool) string {
	if includeJSON {
		return "cs.command_as_json"
	}
	return "NULL::jsonb AS command_as_json"
}

// ListEntriesToBeChecked retrieves pending entries matching the criteria,
// ordered by submission time ascending (oldest pending first).
func (r *PgxAuditRepository) ListEntriesToBeChecked(ctx context.Context, criteria domain.AuditSearchCriteria, includeJSON bool) ([]domain.AuditEntry, error) {
	var args []any
	args = append(args, string(domain.AwaitingApproval))
	clauses := []string{"cs.processing_result = $1"}

	extra, args := buildCriteriaWhere(criteria, args)
	clauses = append(clauses, extra...)

	query := fmt.Sprintf(auditSelect, payloadColumn(includeJSON)) +
		" WHERE " + strings.Join(clauses, " AND ") +
		" ORDER BY cs.made_on_date ASC, cs.command_id ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query pending entries", err)
	}
	return scanAuditEntries(rows)
}

// ListAuditEntries retrieves a keyset-paginated page of the full audit
// trail, newest first.
func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, criteria domain.AuditSearchCriteria, limit int, nextToken *string, includeJSON bool) ([]domain.AuditEntry, *string, error) {
	var args []any
	clauses, args := buildCriteriaWhere(criteria, args)

	if nextToken != nil {
		madeOnDate, commandID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, madeOnDate, commandID)
		clauses = append(clauses, fmt.Sprintf("(cs.made_on_date, cs.command_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(auditSelect, payloadColumn(includeJSON))
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, limit+1) // Fetch one extra row to detect another page
	query += fmt.Sprintf(" ORDER BY cs.made_on_date DESC, cs.command_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query audit entries", err)
	}
	entries, err := scanAuditEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.MadeOnDate, last.CommandID)
		token = &t
	}
	return entries, token, nil
}

// RetrieveSearchTemplate returns the distinct users, action names and entity
// names present in the audit trail.
func (r *PgxAuditRepository) RetrieveSearchTemplate(ctx context.Context) (*domain.AuditSearchTemplate, error) {
	template := &domain.AuditSearchTemplate{}

	rows, err := r.Pool.Query(ctx, `
		SELECT u.user_id, u.username
		FROM app_users u
		WHERE u.deleted_at IS NULL
		ORDER BY u.username;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query app users for search template", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u domain.AppUserSummary
		if err := rows.Scan(&u.UserID, &u.Username); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan app user", err)
		}
		template.AppUsers = append(template.AppUsers, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read app users", err)
	}

	template.ActionNames, err = r.distinctColumn(ctx, "action_name")
	if err != nil {
		return nil, err
	}
	template.EntityNames, err = r.distinctColumn(ctx, "entity_name")
	if err != nil {
		return nil, err
	}
	return template, nil
}

// distinctColumn lists the distinct values of an audit column. Column names
// come only from the two constant call sites above, never from input.
func (r *PgxAuditRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM command_sources ORDER BY %s;`, column, column)
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query distinct "+column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan "+column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read distinct "+column, err)
	}
	return values, nil
}

package pgsql

import (
	"context"

	"github.com/corelend/command_audit_app/internal/apperrors"
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPermissionRepository answers permission checks from the permissions tables.
type PgxPermissionRepository struct {
	BaseRepository
}

func newPgxPermissionRepository(pool *pgxpool.Pool) portsrepo.PermissionReader {
	return &PgxPermissionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PermissionReader = (*PgxPermissionRepository)(nil)

// HasPermission reports whether the user holds the named permission.
func (r *PgxPermissionRepository) HasPermission(ctx context.Context, userID string, resourceName string) (bool, error) {
	var exists bool
	err := r.querier(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM user_permissions up
			JOIN permissions p ON p.permission_id = up.permission_id
			WHERE up.user_id = $1 AND p.code = $2
		);
	`, userID, resourceName).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check permission "+resourceName, err)
	}
	return exists, nil
}

// PgxApprovalRuleRepository answers whether an action/entity pair needs a checker.
type PgxApprovalRuleRepository struct {
	BaseRepository
}

func newPgxApprovalRuleRepository(pool *pgxpool.Pool) portsrepo.ApprovalRuleReader {
	return &PgxApprovalRuleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ApprovalRuleReader = (*PgxApprovalRuleRepository)(nil)

// RequiresApproval reports whether a maker-checker rule is enabled for the pair.
// Pairs with no rule row execute immediately.
func (r *PgxApprovalRuleRepository) RequiresApproval(ctx context.Context, actionName string, entityName string) (bool, error) {
	var enabled bool
	err := r.querier(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM maker_checker_rules
			WHERE action_name = $1 AND entity_name = $2 AND enabled = TRUE
		);
	`, actionName, entityName).Scan(&enabled)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check approval rule for "+actionName+" "+entityName, err)
	}
	return enabled, nil
}

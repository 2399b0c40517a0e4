package pgsql

import (
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository over the shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CommandSourceRepo: newPgxCommandSourceRepository(pool),
		AuditRepo:         newPgxAuditRepository(pool),
		LoanRepo:          newPgxLoanRepository(pool),
		UserRepo:          newPgxUserRepository(pool),
		PermissionRepo:    newPgxPermissionRepository(pool),
		ApprovalRuleRepo:  newPgxApprovalRuleRepository(pool),
	}
}

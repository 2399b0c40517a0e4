package services

import (
	portsrepo "github.com/corelend/command_audit_app/internal/core/ports/repositories"
	portssvc "github.com/corelend/command_audit_app/internal/core/ports/services"
	"github.com/corelend/command_audit_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. All command handlers are registered here, so the
// dispatcher's coverage is fixed at startup.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	codec := NewJSONPayloadCodec()

	registry := NewCommandRegistry()
	registry.MustRegister(ActionCreate, EntityLoan, NewCreateLoanHandler(repos.LoanRepo, codec))
	registry.MustRegister(ActionAdjust, EntityLoanTransaction, NewAdjustLoanTransactionHandler(repos.LoanRepo, codec))

	container := &portssvc.ServiceContainer{}
	container.CommandSource = NewCommandSourceService(
		repos.CommandSourceRepo,
		repos.PermissionRepo,
		repos.ApprovalRuleRepo,
		registry,
	)
	container.Audit = NewAuditService(repos.AuditRepo, repos.PermissionRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo)

	return container
}

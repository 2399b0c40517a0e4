package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container at startup.
type RepositoryProvider struct {
	CommandSourceRepo CommandSourceRepositoryWithTx
	AuditRepo         AuditReader
	LoanRepo          LoanRepositoryFacade
	UserRepo          UserReader
	PermissionRepo    PermissionReader
	ApprovalRuleRepo  ApprovalRuleReader
}

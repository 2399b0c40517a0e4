package services

// ServiceContainer holds all services needed by the handlers.
type ServiceContainer struct {
	CommandSource CommandSourceSvcFacade
	Audit         AuditSvcFacade
	Auth          AuthSvcFacade
}

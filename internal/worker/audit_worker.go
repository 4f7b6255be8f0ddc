package worker

import (
	"github.com/bankops/biomss/internal/events"
	"github.com/bankops/biomss/internal/service"
)

// StartAuditWorker registers the audit trail consumer on the dispatcher.
func StartAuditWorker(auditService *service.AuditService, dispatcher events.Dispatcher) {
	if auditService == nil || dispatcher == nil {
		return
	}
	auditService.RegisterHandlers(dispatcher)
}

package audit

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-hds-keeper/models"
)

// The helpers below are fixed parameterizations of Log.

func (a *auditLogger) LogPatientAccess(ctx context.Context, patientID, action string) string {
	return a.Log(ctx, models.AuditDataAccess, "patients/"+patientID, action,
		models.SensitivityHigh, models.OutcomeSuccess, nil)
}

func (a *auditLogger) LogDataCreation(ctx context.Context, resource string, outcome models.AuditOutcome, details map[string]any) string {
	return a.Log(ctx, models.AuditDataCreation, resource, "create", models.SensitivityHigh, outcome, details)
}

func (a *auditLogger) LogDataModification(ctx context.Context, resource string, outcome models.AuditOutcome, details map[string]any) string {
	return a.Log(ctx, models.AuditDataModification, resource, "update", models.SensitivityHigh, outcome, details)
}

func (a *auditLogger) LogDataDeletion(ctx context.Context, resource string, outcome models.AuditOutcome, details map[string]any) string {
	return a.Log(ctx, models.AuditDataDeletion, resource, "delete", models.SensitivityCritical, outcome, details)
}

func (a *auditLogger) LogAuthentication(ctx context.Context, action string, outcome models.AuditOutcome, details map[string]any) string {
	return a.Log(ctx, models.AuditAuthentication, "auth", action, models.SensitivityMedium, outcome, details)
}

func (a *auditLogger) LogExport(ctx context.Context, resource, format string, count int) string {
	return a.Log(ctx, models.AuditDataExport, resource, "export", models.SensitivityCritical, models.OutcomeSuccess,
		map[string]any{"format": format, "count": count})
}

func (a *auditLogger) LogSecurityEvent(ctx context.Context, action string, sensitivity models.Sensitivity, details map[string]any) string {
	return a.Log(ctx, models.AuditSecurityEvent, "security", action, sensitivity, models.OutcomeSuccess, details)
}

func (a *auditLogger) LogDecryptionFailure(ctx context.Context, resource string, fields []string) string {
	return a.Log(ctx, models.AuditSecurityEvent, resource, "decryption_failure", models.SensitivityHigh, models.OutcomeFailure,
		map[string]any{"fields": strings.Join(fields, ",")})
}

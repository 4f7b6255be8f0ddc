package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops/biomss/internal/domain"
	apperrors "github.com/bankops/biomss/pkg/util"
)

func TestAcknowledgeRecordsFirstActorOnly(t *testing.T) {
	svc := NewAlertService(newFakeAlertRepo(), nil)
	officer := domain.Actor{ID: "usr-sec", Role: domain.RoleSecurityOfficer}

	alert, err := svc.CreateAlert(context.Background(), officer, AlertCreateInput{
		Type:    domain.AlertTypeATMDown,
		Title:   "ATM BR001-01 offline",
		Message: "no heartbeat for 5 minutes",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AlertStatusActive, alert.Status)

	acked, err := svc.Acknowledge(context.Background(), officer, alert.ID)
	require.NoError(t, err)
	require.NotNil(t, acked.AcknowledgedBy)
	assert.Equal(t, "usr-sec", *acked.AcknowledgedBy)
	require.NotNil(t, acked.AcknowledgedAt)
	firstAck := *acked.AcknowledgedAt

	other := domain.Actor{ID: "usr-it", Role: domain.RoleITOfficer}
	again, err := svc.Acknowledge(context.Background(), other, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, "usr-sec", *again.AcknowledgedBy)
	assert.Equal(t, firstAck, *again.AcknowledgedAt)
}

func TestAlertResolveSetsResolvedAtOnce(t *testing.T) {
	svc := NewAlertService(newFakeAlertRepo(), nil)
	actor := domain.Actor{ID: "usr-it", Role: domain.RoleITOfficer}

	alert, err := svc.CreateAlert(context.Background(), actor, AlertCreateInput{
		Title: "core banking latency spike",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AlertTypeOther, alert.Type)

	resolved, err := svc.UpdateStatus(context.Background(), actor, alert.ID, domain.AlertStatusResolved)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	firstResolved := *resolved.ResolvedAt

	again, err := svc.UpdateStatus(context.Background(), actor, alert.ID, domain.AlertStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, firstResolved, *again.ResolvedAt)
}

func TestAlertCreateRequiresTitle(t *testing.T) {
	svc := NewAlertService(newFakeAlertRepo(), nil)
	actor := domain.Actor{ID: "usr-it", Role: domain.RoleITOfficer}

	_, err := svc.CreateAlert(context.Background(), actor, AlertCreateInput{Title: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAlertUpdateRejectsUnknownStatus(t *testing.T) {
	svc := NewAlertService(newFakeAlertRepo(), nil)
	actor := domain.Actor{ID: "usr-it", Role: domain.RoleITOfficer}

	alert, err := svc.CreateAlert(context.Background(), actor, AlertCreateInput{Title: "UPS battery low"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), actor, alert.ID, domain.AlertStatus("SNOOZED"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAlertScopeHidesOtherBranches(t *testing.T) {
	svc := NewAlertService(newFakeAlertRepo(), nil)
	admin := domain.Actor{ID: "usr-admin", Role: domain.RoleAdmin}

	branch1 := "br-1"
	branch2 := "br-2"
	_, err := svc.CreateAlert(context.Background(), admin, AlertCreateInput{Title: "vault sensor fault", BranchID: &branch1})
	require.NoError(t, err)
	hidden, err := svc.CreateAlert(context.Background(), admin, AlertCreateInput{Title: "HVAC failure", BranchID: &branch2})
	require.NoError(t, err)

	manager := domain.Actor{ID: "usr-mgr", Role: domain.RoleBranchManager, BranchID: &branch1}
	visible, err := svc.ListAlerts(context.Background(), manager, AlertListInput{})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "vault sensor fault", visible[0].Title)

	_, err = svc.GetAlert(context.Background(), manager, hidden.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

package service

import (
	"testing"
	"time"

	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

func TestAuthzAuditRecordTargets(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthzAuditService(repository.NewAuthzAuditLogRepository(env.db))
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	adminID := uint(7)
	inputs := []AuthzAuditRecordInput{
		{OperatorAdminID: 1, Action: " Admin_Roles_Update ", TargetAdminID: &adminID},
		{OperatorAdminID: 1, Action: "role_create", Role: "content_admin"},
		{OperatorAdminID: 1, Action: "user_status_update", TargetType: AuditTargetUser, TargetID: 42, Detail: models.JSON{"status": "disabled"}},
		{OperatorAdminID: 1, Action: "recipe_delete", TargetType: AuditTargetRecipe, TargetID: 42},
		{OperatorAdminID: 0, Action: "ignored"},
		{OperatorAdminID: 1, Action: "  "},
	}
	for _, input := range inputs {
		if err := svc.Record(input); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	all, total, err := svc.List(repository.AuthzAuditLogListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("entries without operator or action should be skipped: got=%d expected=4", total)
	}
	oldest := all[len(all)-1]
	if oldest.Action != "admin_roles_update" || oldest.TargetType != AuditTargetAdmin || oldest.TargetID != adminID {
		t.Fatalf("target admin should be inferred: %+v", oldest)
	}
	if !oldest.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected created_at: %s", oldest.CreatedAt)
	}
	if all[len(all)-2].TargetType != AuditTargetRole {
		t.Fatalf("role-only entry should target the role: %+v", all[len(all)-2])
	}

	userLogs, total, err := svc.List(repository.AuthzAuditLogListFilter{TargetType: "USER", TargetID: 42})
	if err != nil {
		t.Fatalf("list by target failed: %v", err)
	}
	if total != 1 || userLogs[0].Action != "user_status_update" || userLogs[0].Detail["status"] != "disabled" {
		t.Fatalf("target filter should isolate the user entry: total=%d logs=%+v", total, userLogs)
	}
}

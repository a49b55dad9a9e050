package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/foodgram-next/internal/constants"
	"github.com/foodgram-next/internal/models"
	"github.com/foodgram-next/internal/repository"
)

func TestUserLoginLogRecordAndList(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserLoginLogService(repository.NewUserLoginLogRepository(env.db))
	user := env.createUser(t, "cook")

	if err := svc.Record(RecordUserLoginInput{
		Email:     " COOK@example.com ",
		Status:    "weird",
		ClientIP:  "10.0.0.1",
		RequestID: "req-1",
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if err := svc.Record(RecordUserLoginInput{
		UserID:     user.ID,
		Email:      user.Email,
		Status:     constants.LoginLogStatusSuccess,
		FailReason: "ignored",
		ClientIP:   "10.0.0.1",
	}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	logs, total, err := svc.ListForAdmin(repository.UserLoginLogListFilter{Email: "cook@example.com"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(logs) != 2 {
		t.Fatalf("unexpected total: got=%d expected=2", total)
	}
	if logs[0].Status != constants.LoginLogStatusSuccess || logs[0].FailReason != "" {
		t.Fatalf("newest log should be the success one: %+v", logs[0])
	}
	if logs[1].Status != constants.LoginLogStatusFailed || logs[1].FailReason != constants.LoginLogFailReasonInternalError {
		t.Fatalf("unknown status should be recorded as failed: %+v", logs[1])
	}

	mine, total, err := svc.ListByUser(user.ID, 0, 0)
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 1 || mine[0].UserID != user.ID {
		t.Fatalf("user should only see own logs: total=%d", total)
	}

	failed, _, err := svc.ListForAdmin(repository.UserLoginLogListFilter{Status: "FAILED"})
	if err != nil || len(failed) != 1 {
		t.Fatalf("status filter failed: len=%d err=%v", len(failed), err)
	}
}

func TestLoginFailReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrInvalidCredentials, constants.LoginLogFailReasonInvalidCredentials},
		{fmt.Errorf("wrap: %w", ErrUserDisabled), constants.LoginLogFailReasonUserDisabled},
		{errors.New("db down"), constants.LoginLogFailReasonInternalError},
	}
	for _, tc := range tests {
		if got := LoginFailReason(tc.err); got != tc.want {
			t.Fatalf("unexpected reason for %v: got=%s expected=%s", tc.err, got, tc.want)
		}
	}
}

func TestUserLoginLogNilService(t *testing.T) {
	var svc *UserLoginLogService
	if err := svc.Record(RecordUserLoginInput{Email: "a@example.com"}); err != nil {
		t.Fatalf("nil service should be a no-op: %v", err)
	}
	logs, total, err := svc.ListByUser(1, 1, 10)
	if err != nil || total != 0 || len(logs) != 0 {
		t.Fatalf("nil service should list nothing")
	}
}

func TestUserLoginLogPrune(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserLoginLogService(repository.NewUserLoginLogRepository(env.db))
	now := time.Now()

	rows := []models.UserLoginLog{
		{Email: "old@example.com", Status: constants.LoginLogStatusFailed, ClientIP: "10.1.0.7", CreatedAt: now.AddDate(0, 0, -120)},
		{Email: "new@example.com", Status: constants.LoginLogStatusFailed, ClientIP: "10.1.0.8", CreatedAt: now.AddDate(0, 0, -5)},
	}
	if err := env.db.Create(&rows).Error; err != nil {
		t.Fatalf("seed logs failed: %v", err)
	}

	subnet, _, err := svc.ListForAdmin(repository.UserLoginLogListFilter{ClientIP: "10.1."})
	if err != nil || len(subnet) != 2 {
		t.Fatalf("ip prefix filter failed: len=%d err=%v", len(subnet), err)
	}

	if removed, err := svc.Prune(0, now); err != nil || removed != 0 {
		t.Fatalf("zero retention should keep everything: removed=%d err=%v", removed, err)
	}
	removed, err := svc.Prune(90, now)
	if err != nil || removed != 1 {
		t.Fatalf("prune failed: removed=%d err=%v", removed, err)
	}
	left, total, err := svc.ListForAdmin(repository.UserLoginLogListFilter{})
	if err != nil || total != 1 || left[0].Email != "new@example.com" {
		t.Fatalf("unexpected logs after prune: total=%d err=%v", total, err)
	}
}

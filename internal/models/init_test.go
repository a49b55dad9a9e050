package models

import "testing"

func TestInitDefaultAdmin(t *testing.T) {
	// 共享内存库在最后一个连接关闭时即被销毁，需保留一个空闲连接
	if err := InitDB("sqlite", "file:init_default_admin?mode=memory&cache=shared", DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}, false); err != nil {
		t.Fatalf("init db failed: %v", err)
	}
	if err := DB.AutoMigrate(&Admin{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	if err := InitDefaultAdmin(" root ", ""); err != nil {
		t.Fatalf("create default admin failed: %v", err)
	}
	var admin Admin
	if err := DB.Where("username = ?", "root").First(&admin).Error; err != nil {
		t.Fatalf("default admin missing: %v", err)
	}
	if !admin.IsSuper || admin.PasswordHash == defaultAdminPassword {
		t.Fatalf("default admin should be a super admin with hashed password: %+v", admin)
	}

	if err := DB.Model(&Admin{}).Where("id = ?", admin.ID).Update("is_super", false).Error; err != nil {
		t.Fatalf("demote failed: %v", err)
	}
	if err := InitDefaultAdmin("root", "ignored"); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	var count int64
	DB.Model(&Admin{}).Count(&count)
	if count != 1 {
		t.Fatalf("existing admins should not be duplicated: %d", count)
	}
	if err := DB.First(&admin, admin.ID).Error; err != nil || !admin.IsSuper {
		t.Fatalf("admin should be promoted back to super: %+v err=%v", admin, err)
	}
}

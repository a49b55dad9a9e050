package models

import (
	"strings"

	"github.com/foodgram-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// InitDefaultAdmin 空库时创建首个超级管理员；已有管理员但没有超级管理员时提升该用户名
func InitDefaultAdmin(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		username = defaultAdminUsername
	}

	var total, supers int64
	if err := DB.Model(&Admin{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		if err := DB.Model(&Admin{}).Where("is_super = ?", true).Count(&supers).Error; err != nil {
			return err
		}
		if supers == 0 {
			promoted := DB.Model(&Admin{}).Where("username = ?", username).Update("is_super", true)
			if promoted.Error != nil {
				return promoted.Error
			}
			logger.Warnw("default_admin_promoted", "username", username, "rows", promoted.RowsAffected)
		}
		return nil
	}

	usingDefault := password == ""
	if usingDefault {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := DB.Create(&Admin{Username: username, PasswordHash: string(hash), IsSuper: true}).Error; err != nil {
		return err
	}
	logger.Warnw("default_admin_created", "username", username, "default_password", usingDefault)
	return nil
}

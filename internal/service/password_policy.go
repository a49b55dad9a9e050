package service

import (
	"strings"
	"unicode"

	"github.com/foodgram-next/internal/config"
)

// validatePassword 按策略校验密码；attrs 为用户名、邮箱等个人信息，密码不能包含它们
func validatePassword(policy config.PasswordPolicyConfig, password string, attrs ...string) error {
	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return newValidationError("error.password_min_length", ErrWeakPassword, policy.MinLength)
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}
	if password != "" && hasNumber && !hasUpper && !hasLower && !hasSpecial {
		return newValidationError("error.password_entirely_numeric", ErrWeakPassword)
	}

	switch {
	case policy.RequireUpper && !hasUpper:
		return newValidationError("error.password_require_upper", ErrWeakPassword)
	case policy.RequireLower && !hasLower:
		return newValidationError("error.password_require_lower", ErrWeakPassword)
	case policy.RequireNumber && !hasNumber:
		return newValidationError("error.password_require_number", ErrWeakPassword)
	case policy.RequireSpecial && !hasSpecial:
		return newValidationError("error.password_require_special", ErrWeakPassword)
	}

	lowered := strings.ToLower(password)
	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if at := strings.Index(attr, "@"); at > 0 {
			attr = attr[:at]
		}
		if len([]rune(attr)) >= 3 && strings.Contains(lowered, attr) {
			return newValidationError("error.password_too_similar", ErrWeakPassword)
		}
	}
	return nil
}

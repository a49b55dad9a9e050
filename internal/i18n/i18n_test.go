package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLocaleCatalogsShareKeys(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatalf("load catalogs failed: %v", err)
	}
	base := catalogs[DefaultLocale]
	if len(base) == 0 {
		t.Fatalf("default catalog is empty")
	}
	for _, locale := range SupportedLocales() {
		messages := catalogs[locale]
		if len(messages) != len(base) {
			t.Fatalf("catalog %s size mismatch: got=%d expected=%d", locale, len(messages), len(base))
		}
		for key := range base {
			if _, ok := messages[key]; !ok {
				t.Fatalf("catalog %s missing key %s", locale, key)
			}
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", LocaleRU},
		{"en", LocaleEN},
		{"en-GB,en;q=0.9", LocaleEN},
		{"zh-Hans-CN", LocaleZH},
		{"fr-FR", LocaleRU},
		{"%%%", LocaleRU},
	}
	for _, tc := range tests {
		if got := NormalizeLocale(tc.raw); got != tc.want {
			t.Fatalf("normalize %q: got=%s expected=%s", tc.raw, got, tc.want)
		}
	}
}

func TestTranslateFallback(t *testing.T) {
	if got := T(LocaleEN, "shopping_list.title"); got != "Shopping list:" {
		t.Fatalf("unexpected english title: %s", got)
	}
	if got := T("fr-FR", "shopping_list.title"); got != "Список покупок:" {
		t.Fatalf("unknown locale should fall back to default: %s", got)
	}
	if got := T(LocaleEN, "missing.key"); got != "missing.key" {
		t.Fatalf("missing key should be returned as is: %s", got)
	}
	if got := Sprintf(LocaleEN, "error.password_min_length", 8); got != "Password must contain at least 8 characters" {
		t.Fatalf("unexpected formatted message: %s", got)
	}
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/tags?lang=zh-CN", nil)
	c.Request.Header.Set("Accept-Language", "en-US")
	if got := ResolveLocale(c); got != LocaleZH {
		t.Fatalf("lang query should win: %s", got)
	}

	// query 已被 c 缓存，换一个 context 才能只看请求头
	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/tags", nil)
	c.Request.Header.Set("Accept-Language", "en-US")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("header locale not applied: %s", got)
	}
	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("nil context should use default: %s", got)
	}
}

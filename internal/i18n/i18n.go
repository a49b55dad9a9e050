package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"golang.org/x/text/language"
)

// 支持的语言
const (
	LocaleRU = "ru-RU"
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"

	DefaultLocale = LocaleRU
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	loadOnce sync.Once
	catalogs map[string]map[string]string
	loadErr  error

	supportedTags = []language.Tag{
		language.MustParse(LocaleRU),
		language.MustParse(LocaleEN),
		language.MustParse(LocaleZH),
	}
	matcher = language.NewMatcher(supportedTags)
)

func load() {
	catalogs = make(map[string]map[string]string, len(supportedTags))
	for _, tag := range supportedTags {
		locale := tag.String()
		content, err := localeFS.ReadFile(path.Join("locales", locale+".json"))
		if err != nil {
			loadErr = fmt.Errorf("read locale %s failed: %w", locale, err)
			return
		}
		messages := make(map[string]string)
		if err := json.Unmarshal(content, &messages); err != nil {
			loadErr = fmt.Errorf("parse locale %s failed: %w", locale, err)
			return
		}
		catalogs[locale] = messages
	}
}

// Load 预加载全部语言包，启动时调用以便尽早暴露错误
func Load() error {
	loadOnce.Do(load)
	return loadErr
}

// NormalizeLocale 将任意语言标签匹配到受支持的语言
func NormalizeLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale
	}
	return supportedTags[index].String()
}

// ResolveLocale 依次读取 lang 查询参数与 Accept-Language 请求头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	return NormalizeLocale(c.GetHeader("Accept-Language"))
}

// T 翻译 key，缺失时回退到默认语言，仍缺失则返回 key 本身
func T(locale, key string) string {
	loadOnce.Do(load)
	if messages, ok := catalogs[locale]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译后按参数格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// SupportedLocales 受支持的语言列表，默认语言在前
func SupportedLocales() []string {
	return []string{LocaleRU, LocaleEN, LocaleZH}
}

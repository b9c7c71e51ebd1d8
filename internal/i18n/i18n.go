package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// Supported locales. English is the fallback.
const (
	LocaleEN = "en"
	LocalePL = "pl"
)

// T returns the message for key in the given locale, falling back to
// English and then to the key itself.
func T(locale, key string) string {
	normalized := Normalize(locale)
	if catalog, ok := catalogs[normalized]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[LocaleEN][key]; ok {
		return msg
	}
	return key
}

// Sprintf formats the message for key with args.
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// Normalize maps a locale or user language tag to a supported locale.
func Normalize(locale string) string {
	l := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(l, "pl"):
		return LocalePL
	case l == "eng":
		return LocaleEN
	default:
		return LocaleEN
	}
}

// FromLanguage maps a stored user language (PL / ENG) to a locale.
func FromLanguage(language string) string {
	if strings.EqualFold(strings.TrimSpace(language), "PL") {
		return LocalePL
	}
	return LocaleEN
}

// ResolveLocale picks a locale for the request from Accept-Language.
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return LocaleEN
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(tag), "pl") {
			return LocalePL
		}
		if strings.HasPrefix(strings.ToLower(tag), "en") {
			return LocaleEN
		}
	}
	return LocaleEN
}

package middleware

import (
	"taskflow/pkg/translator"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// LanguageMiddleware stores the first supported language of the Accept-Language header, falling back to en.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", negotiateLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}

func negotiateLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return translator.LanguageEn
	}

	for _, tag := range tags {
		base, _ := tag.Base()
		switch base.String() {
		case translator.LanguageFr:
			return translator.LanguageFr
		case translator.LanguageEn:
			return translator.LanguageEn
		}
	}
	return translator.LanguageEn
}

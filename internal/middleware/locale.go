package middleware

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/locale"
)

const (
	LocaleKey = "locale"

	headerAcceptLanguage  = "Accept-Language"
	headerContentLanguage = "Content-Language"
)

// LocaleMiddleware picks the response language of each request.
type LocaleMiddleware struct {
	fallback language.Tag
}

// NewLocaleMiddleware creates a LocaleMiddleware that falls back to the
// named default locale.
func NewLocaleMiddleware(defaultLocale string) *LocaleMiddleware {
	return &LocaleMiddleware{fallback: locale.Parse(defaultLocale)}
}

// Detect matches Accept-Language against the supported languages, stores the
// result under LocaleKey and sets Content-Language on the response.
func (l *LocaleMiddleware) Detect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tag := locale.Match(c.Request().Header.Get(headerAcceptLanguage), l.fallback)
			c.Set(LocaleKey, tag)
			c.Response().Header().Set(headerContentLanguage, tag.String())
			return next(c)
		}
	}
}

// GetLocale returns the language chosen for the request, or Turkish when
// Detect did not run.
func GetLocale(c echo.Context) language.Tag {
	if tag, ok := c.Get(LocaleKey).(language.Tag); ok {
		return tag
	}
	return locale.Turkish
}

// Text returns the localized message for key in the request's language.
func Text(c echo.Context, key locale.Key) string {
	return locale.Text(GetLocale(c), key)
}

// Package locale resolves the user-interface strings through go-i18n.
// Translation files are TOML, embedded by the web package.
package locale

import (
	"embed"
	"io/fs"
	"strings"

	"microblog/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var (
	i18nBundle   *i18n.Bundle
	LocalizerWeb *i18n.Localizer
)

// InitLocalizer parses the embedded translation files into the bundle,
// with en-US as the default language.
func InitLocalizer(i18nFS embed.FS) error {
	i18nBundle = i18n.NewBundle(language.MustParse("en-US"))
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	err := fs.WalkDir(i18nFS, "translation", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := i18nFS.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = i18nBundle.ParseMessageFileBytes(data, path)
		return err
	})
	if err != nil {
		return err
	}

	LocalizerWeb = i18n.NewLocalizer(i18nBundle, "en-US")
	return nil
}

// I18n renders the message for key. Params are "name==value" pairs fed to
// the message template.
func I18n(key string, params ...string) string {
	if LocalizerWeb == nil {
		return key
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, "==", 2)
		if len(parts) == 2 {
			templateData[parts[0]] = parts[1]
		}
	}

	msg, err := LocalizerWeb.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		logger.Warningf("failed to localize %s: %v", key, err)
		return key
	}
	return msg
}

// LocalizerMiddleware picks the request language from the lang cookie or the
// Accept-Language header and exposes I18n to the handlers.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string
		if cookie, err := c.Request.Cookie("lang"); err == nil {
			lang = cookie.Value
		} else {
			lang = c.GetHeader("Accept-Language")
		}

		LocalizerWeb = i18n.NewLocalizer(i18nBundle, lang, "en-US")

		c.Set("I18n", I18n)
		c.Next()
	}
}

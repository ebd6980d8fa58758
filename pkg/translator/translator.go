package translator

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // file base names that are loaded, e.g. "en" for en.toml
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

const translationExt = ".toml"

// InitTranslator builds the global bundle from <lang>.toml files. A missing
// folder leaves an empty bundle, so callers fall back to raw message keys.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != translationExt {
			continue
		}

		lang := strings.TrimSuffix(entry.Name(), translationExt)
		if len(cfg.SupportedLanguages) > 0 && !slices.Contains(cfg.SupportedLanguages, lang) {
			zap.L().Debug("skipping unsupported translation file", zap.String("file", entry.Name()))
			continue
		}

		if _, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, entry.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		loaded++
	}

	zap.L().Debug("translations loaded", zap.String("folder", cfg.TranslationFolder), zap.Int("files", loaded))
}

package notify

import (
	"context"

	"golang.org/x/text/language"
)

type languageKey struct{}

// WithLanguage stores the negotiated response language on ctx.
func WithLanguage(ctx context.Context, lang language.Tag) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// LanguageFrom returns the language stored on ctx, or the default one.
func LanguageFrom(ctx context.Context) language.Tag {
	if lang, ok := ctx.Value(languageKey{}).(language.Tag); ok {
		return lang
	}
	return Supported[0]
}

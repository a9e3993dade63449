// Package notify builds the localized notifications returned to API clients
// after a mutation succeeds or any operation fails.
//
// Messages live in the golang.org/x/text message catalog, in Brazilian
// Portuguese (default) and English. The language is negotiated from the
// request's Accept-Language header.
package notify

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Kind distinguishes success notifications from error notifications.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Action names the operation a notification reports on.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionLoad    Action = "load"
	ActionLookup  Action = "lookup"
	ActionReport  Action = "report"
	ActionEnqueue Action = "enqueue"
)

// Entity is a catalog key identifying a resource, e.g. "lavoura".
type Entity string

// Notification is the user-facing message attached to responses.
type Notification struct {
	Kind    Kind   `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Supported lists the languages with catalog entries. The first one is the default.
var Supported = []language.Tag{language.BrazilianPortuguese, language.English}

var matcher = language.NewMatcher(Supported)

// Language negotiates the response language from an Accept-Language header value.
// Unparseable or empty headers fall back to Brazilian Portuguese.
func Language(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return Supported[0]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Supported[0]
	}

	_, index, _ := matcher.Match(tags...)
	return Supported[index]
}

// Name returns the localized display name of an entity ("Lavoura", "Field").
func Name(lang language.Tag, entity Entity) string {
	return message.NewPrinter(lang).Sprintf(message.Key("entity."+string(entity), string(entity)))
}

// Success builds the notification shown after a mutation completes.
func Success(lang language.Tag, entity Entity, action Action) *Notification {
	p := message.NewPrinter(lang)
	name := Name(lang, entity)

	key := "success." + string(action) + "." + gender(entity)

	return &Notification{
		Kind:    KindSuccess,
		Title:   Title(lang, KindSuccess),
		Message: p.Sprintf(message.Key(key, "%s"), name),
	}
}

// Failure builds the notification shown when an operation fails.
// cause is the underlying error message and is carried verbatim.
func Failure(lang language.Tag, entity Entity, action Action, cause string) *Notification {
	p := message.NewPrinter(lang)
	name := cases.Lower(lang).String(Name(lang, entity))

	return &Notification{
		Kind:    KindError,
		Title:   Title(lang, KindError),
		Message: p.Sprintf(message.Key("error."+string(action), "%s: %s"), name, cause),
	}
}

// Title returns the localized heading of a notification kind.
func Title(lang language.Tag, kind Kind) string {
	p := message.NewPrinter(lang)
	if kind == KindSuccess {
		return p.Sprintf(message.Key("title.success", "Success"))
	}
	return p.Sprintf(message.Key("title.error", "Error"))
}

// gender returns the grammatical gender suffix used by Portuguese success messages.
func gender(entity Entity) string {
	if feminine[entity] {
		return "f"
	}
	return "m"
}

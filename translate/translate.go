// Package translate formats user visible messages for the minivm tools
// in the language of the current locale.
package translate

import (
	"log"
	"os"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

const (
	LANG_ENV     = "MINIVM_LANG" // Overrides the system locale when set.
	LANG_DEFAULT = "en-US"       // Used when no locale is known.
)

var printer *message.Printer

func init() {
	SetLocales(preferred()...)
}

// preferred returns the user's locales, most preferred first.
func preferred() (tags []string) {
	if env := os.Getenv(LANG_ENV); len(env) != 0 {
		tags = []string{env}
		return
	}

	tags, err := locale.GetLocales()
	if err != nil {
		log.Printf("minivm: locale: %v", err)
	}

	return
}

// SetLocales selects the message language from BCP 47 tags, most
// preferred first. With no tags, LANG_DEFAULT is used.
func SetLocales(tags ...string) {
	if len(tags) == 0 {
		tags = []string{LANG_DEFAULT}
	}

	printer = message.NewPrinter(message.MatchLanguage(tags...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Logf logs an en-US Printf() format, translated.
func Logf(key message.Reference, args ...any) {
	log.Print(printer.Sprintf(key, args...))
}

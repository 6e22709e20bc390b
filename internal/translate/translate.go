// Package translate formats user-facing text for the host locale.
package translate

import (
	"github.com/jeandeaual/go-locale"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/message"
)

var printer = NewPrinter(systemLocales()...)

func systemLocales() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		logrus.Warnf("intel8080: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return locales
}

// NewPrinter returns a printer for the best match among the given locales.
func NewPrinter(locales ...string) *message.Printer {
	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

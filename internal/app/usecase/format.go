package usecase

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders numbers for chat replies in the configured language.
type Formatter struct {
	p *message.Printer
}

func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

var defaultFormatter = NewFormatter(language.English)

func formatterOrDefault(f *Formatter) *Formatter {
	if f == nil {
		return defaultFormatter
	}
	return f
}

func (f *Formatter) ML(amount int) string {
	return f.p.Sprintf("%d ml", amount)
}

func (f *Formatter) Percent(p float64) string {
	return f.p.Sprintf("%.0f%%", p)
}

func (f *Formatter) Sprintf(format string, args ...any) string {
	return f.p.Sprintf(format, args...)
}

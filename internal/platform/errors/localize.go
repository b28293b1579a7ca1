package errors

import "github.com/louisbranch/pound-of-flesh/internal/platform/errors/i18n"

// Localized renders the user-facing message for the error in locale.
func (e *Error) Localized(locale string) string {
	return i18n.GetCatalog(locale).Format(string(e.Code), e.Metadata)
}

// ToLocalizedGRPCStatus converts the error to a status carrying the
// catalog message for locale.
func (e *Error) ToLocalizedGRPCStatus(locale string) error {
	cat := i18n.GetCatalog(locale)
	return e.ToGRPCStatus(cat.Locale(), cat.Format(string(e.Code), e.Metadata))
}

// UserMessage renders any error for the end user. Errors outside the
// taxonomy are surfaced generically.
func UserMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	if domainErr, ok := As(err); ok {
		return domainErr.Localized(locale)
	}
	return i18n.GetCatalog(locale).Format(string(CodeInternal), nil)
}

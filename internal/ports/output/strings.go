package output

// Strings exposes the localized string catalog: entity display names and
// setup-flow text. Lookups are soft; on a miss implementations return a
// usable fallback (typically the raw key) together with the error so the
// caller can log and keep going.
type Strings interface {
	// EntityName renders the display name of an entity, e.g.
	// ("en", "sensor", "charging_status") -> "Charging status".
	EntityName(locale, domain, key string) (string, error)
	// ConfigField renders the label of one setup-flow input.
	ConfigField(locale, step, field string) (string, error)
	StepTitle(locale, step string) (string, error)
	StepDescription(locale, step string) (string, error)
	// FlowError renders the text for a recoverable setup failure code.
	FlowError(locale, code string) (string, error)
	// FlowAbort renders the text for a terminal setup abort reason.
	FlowAbort(locale, code string) (string, error)
	// EntityCatalog renders every entity name for one locale, keyed by
	// domain then key.
	EntityCatalog(locale string) map[string]map[string]string
	// Locales lists the locales the catalog can serve.
	Locales() []string
}

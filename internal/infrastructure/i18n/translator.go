package i18n

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/borski/ha-lucidmotors/internal/ports/output"
)

//go:embed strings.json common.json
var tableFS embed.FS

// Ensure Translator implements the output.Strings port.
var _ output.Strings = (*Translator)(nil)

// Translator layers locale selection on top of the strings table using
// go-i18n. The embedded table is the base (English) catalog; additional
// locales may be loaded from a directory of documents in the same format.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	table           *Table
	common          *CommonTable
	logger          *slog.Logger
}

// NewTranslator builds the process-wide translator. The embedded catalog
// must load cleanly, including resolution of every common reference;
// anything less is an authoring error worth failing the boot for.
// Translation files under extraDir are best effort.
func NewTranslator(defaultLocale, extraDir string, logger *slog.Logger) (*Translator, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}

	table, common, resolved, err := loadEmbedded()
	if err != nil {
		return nil, err
	}

	bundle := i18n.NewBundle(tag)
	if err := bundle.AddMessages(tag, resolved.messages()...); err != nil {
		return nil, fmt.Errorf("register base catalog: %w", err)
	}

	t := &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		table:           table,
		common:          common,
		logger:          logger,
	}
	t.loadExtra(extraDir)
	return t, nil
}

func loadEmbedded() (*Table, *CommonTable, *Table, error) {
	stringsRaw, err := tableFS.ReadFile("strings.json")
	if err != nil {
		return nil, nil, nil, err
	}
	doc, err := ParseDocument(stringsRaw)
	if err != nil {
		return nil, nil, nil, err
	}
	table, err := NewTable(doc)
	if err != nil {
		return nil, nil, nil, err
	}
	commonRaw, err := tableFS.ReadFile("common.json")
	if err != nil {
		return nil, nil, nil, err
	}
	common, err := ParseCommon(commonRaw)
	if err != nil {
		return nil, nil, nil, err
	}
	resolved, issues := table.Resolved(common)
	if len(issues) > 0 {
		return nil, nil, nil, fmt.Errorf("resolve base catalog: %w", errors.Join(issues...))
	}
	return table, common, resolved, nil
}

// loadExtra merges per-locale documents named <lang>.json. A file that
// fails to parse is skipped with a warning so one bad community
// translation cannot take the bridge down.
func (t *Translator) loadExtra(dir string) {
	if dir == "" {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.logger.Warn("translations dir not readable", "dir", dir, "error", err)
		return
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(name, ".json")
		tag, err := language.Parse(lang)
		if err != nil {
			t.logger.Warn("skipping translation file with bad locale", "file", name, "error", err)
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.logger.Warn("skipping unreadable translation file", "file", name, "error", err)
			continue
		}
		doc, err := ParseDocument(raw)
		if err != nil {
			t.logger.Warn("skipping malformed translation file", "file", name, "error", err)
			continue
		}
		table, err := NewTable(doc)
		if err != nil {
			t.logger.Warn("skipping invalid translation file", "file", name, "error", err)
			continue
		}
		resolved, issues := table.Resolved(t.common)
		for _, issue := range issues {
			t.logger.Warn("translation reference left unresolved", "file", name, "error", issue)
		}
		if err := t.bundle.AddMessages(tag, resolved.messages()...); err != nil {
			t.logger.Warn("skipping translation file", "file", name, "error", err)
			continue
		}
		t.logger.Info("loaded translations", "locale", tag.String(), "file", name)
	}
}

// messages flattens a resolved table into go-i18n messages. IDs follow
// the document structure: entity.<domain>.<key>.name,
// config.step.<id>.data.<field>, config.error.<code>, ...
func (t *Table) messages() []*i18n.Message {
	var msgs []*i18n.Message
	add := func(id string, v Value) {
		msgs = append(msgs, &i18n.Message{ID: id, Other: v.String()})
	}
	for dom, keys := range t.entity {
		for key, v := range keys {
			add("entity."+dom+"."+key+".name", v)
		}
	}
	for id, step := range t.steps {
		if !step.Title.IsZero() {
			add("config.step."+id+".title", step.Title)
		}
		if !step.Description.IsZero() {
			add("config.step."+id+".description", step.Description)
		}
		for field, v := range step.Data {
			add("config.step."+id+".data."+field, v)
		}
	}
	for code, v := range t.errs {
		add("config.error."+code, v)
	}
	for code, v := range t.aborts {
		add("config.abort."+code, v)
	}
	return msgs
}

// localize renders one message id, falling back from the requested
// locale to the default one. On a miss it reports ErrMissingKey and
// returns the given fallback so callers always have usable text.
func (t *Translator) localize(locale, id, fallback string) (string, error) {
	languages := []string{}
	if locale != "" {
		languages = append(languages, locale)
	}
	languages = append(languages, t.defaultLanguage.String())

	localizer := i18n.NewLocalizer(t.bundle, languages...)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return fallback, fmt.Errorf("localize %s (locales=%v): %w", id, languages, ErrMissingKey)
	}
	return msg, nil
}

// EntityName returns the display name for an entity, falling back to the
// raw key on a miss.
func (t *Translator) EntityName(locale, domain, key string) (string, error) {
	return t.localize(locale, "entity."+domain+"."+key+".name", key)
}

// ConfigField returns the label of a setup-flow input.
func (t *Translator) ConfigField(locale, step, field string) (string, error) {
	return t.localize(locale, "config.step."+step+".data."+field, field)
}

// StepTitle returns the title of a setup-flow step.
func (t *Translator) StepTitle(locale, step string) (string, error) {
	return t.localize(locale, "config.step."+step+".title", step)
}

// StepDescription returns the description of a setup-flow step.
func (t *Translator) StepDescription(locale, step string) (string, error) {
	return t.localize(locale, "config.step."+step+".description", "")
}

// FlowError returns the text behind a setup-flow error code.
func (t *Translator) FlowError(locale, code string) (string, error) {
	return t.localize(locale, "config.error."+code, code)
}

// FlowAbort returns the text behind a setup-flow abort reason.
func (t *Translator) FlowAbort(locale, code string) (string, error) {
	return t.localize(locale, "config.abort."+code, code)
}

// EntityCatalog renders every entity name for one locale, keyed by
// domain then key.
func (t *Translator) EntityCatalog(locale string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(t.table.entity))
	for _, dom := range t.table.Domains() {
		byKey := make(map[string]string)
		for _, key := range t.table.Keys(dom) {
			name, err := t.EntityName(locale, dom, key)
			if err != nil {
				t.logger.Warn("entity name missing", "domain", dom, "key", key, "locale", locale)
			}
			byKey[key] = name
		}
		out[dom] = byKey
	}
	return out
}

// Locales lists the locales the bundle can serve.
func (t *Translator) Locales() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}

// Table exposes the raw, unresolved strings table.
func (t *Translator) Table() *Table {
	return t.table
}

// Package html renders the analysis page: the input form followed by the
// formatted summary or the empty state.
package html

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-pestel/pkg/analysis"
	"github.com/goliatone/go-pestel/pkg/model"
	rendertemplate "github.com/goliatone/go-pestel/pkg/render/template"
	"github.com/goliatone/go-pestel/pkg/render/template/gotemplate"
	"github.com/goliatone/go-pestel/pkg/results"
)

// ContentType is the media type of rendered pages.
const ContentType = "text/html; charset=utf-8"

// Page is everything one render needs.
type Page struct {
	Form   model.FormModel
	Input  analysis.FormInput
	Result *analysis.Result
	// Error is shown above the form when set.
	Error string
	// Action is the form target; defaults to "/".
	Action string
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates rendertemplate.Renderer
	selector  theme.ThemeSelector
	theme     string
	variant   string
}

// WithTemplateRenderer injects a custom template renderer. It must provide
// templates/page.tmpl.
func WithTemplateRenderer(renderer rendertemplate.Renderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templates = renderer
		}
	}
}

// WithThemeSelector replaces the built-in theme manifest.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(cfg *config) {
		if selector != nil {
			cfg.selector = selector
		}
	}
}

// WithTheme picks the theme and variant passed to the selector.
func WithTheme(name, variant string) Option {
	return func(cfg *config) {
		cfg.theme = strings.TrimSpace(name)
		cfg.variant = strings.TrimSpace(variant)
	}
}

// Renderer writes full HTML pages.
type Renderer struct {
	templates rendertemplate.Renderer
	theme     *theme.RendererConfig
}

// New builds a Renderer. The theme is resolved once, so an unknown theme or
// variant fails here rather than on every request.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	labels := map[string]any{
		"result_title":  results.Title,
		"empty_message": results.EmptyMessage,
	}
	if cfg.templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithName("pestel-html"),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithGlobalData(labels),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure templates: %w", err)
		}
		cfg.templates = engine
	} else if err := cfg.templates.GlobalContext(labels); err != nil {
		return nil, fmt.Errorf("html renderer: template globals: %w", err)
	}
	if err := cfg.templates.RegisterFilter(markupFilter, markupFilterFunc); err != nil && !errors.Is(err, rendertemplate.ErrFilterExists) {
		return nil, fmt.Errorf("html renderer: register filter: %w", err)
	}

	if cfg.selector == nil {
		selector, err := NewManifestSelector(DefaultThemeName, DefaultThemeVariant, DefaultManifest())
		if err != nil {
			return nil, err
		}
		cfg.selector = selector
	}
	selection, err := cfg.selector.Select(cfg.theme, cfg.variant)
	if err != nil {
		return nil, fmt.Errorf("html renderer: select theme: %w", err)
	}
	themeCfg := RendererConfig(selection)
	if err := cfg.templates.GlobalContext(map[string]any{"theme": buildThemeView(themeCfg)}); err != nil {
		return nil, fmt.Errorf("html renderer: theme globals: %w", err)
	}

	return &Renderer{templates: cfg.templates, theme: themeCfg}, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType returns the media type of Render output.
func (r *Renderer) ContentType() string {
	return ContentType
}

// Theme returns the resolved theme configuration.
func (r *Renderer) Theme() *theme.RendererConfig {
	return r.theme
}

// Render writes the page to w.
func (r *Renderer) Render(_ context.Context, w io.Writer, page Page) error {
	if _, err := r.templates.RenderTemplate(pageTemplate, buildView(page), w); err != nil {
		return fmt.Errorf("html renderer: render page: %w", err)
	}
	return nil
}

// pageView is the per-request template data. Titles and theme are template
// globals set in New.
type pageView struct {
	AppTitle  string      `json:"app_title"`
	Error     string      `json:"error"`
	Form      formView    `json:"form"`
	HasResult bool        `json:"has_result"`
	Blocks    []blockView `json:"blocks"`
}

type formView struct {
	Method string      `json:"method"`
	Action string      `json:"action"`
	Fields []fieldView `json:"fields"`
}

type fieldView struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Widget      model.Widget `json:"widget"`
	Required    bool         `json:"required"`
	Value       string       `json:"value"`
	Placeholder string       `json:"placeholder"`
	Description string       `json:"description"`
	Options     []optionView `json:"options"`
	Checkboxes  []optionView `json:"checkboxes"`
}

type optionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
	Checked  bool   `json:"checked"`
}

type blockView struct {
	Kind results.BlockKind `json:"kind"`
	Text string            `json:"text"`
}

type themeView struct {
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	CSSVars    string `json:"css_vars"`
	Stylesheet string `json:"stylesheet"`
}

func buildView(page Page) pageView {
	view := pageView{
		AppTitle: page.Form.Metadata["title"],
		Error:    page.Error,
		Form: formView{
			Method: http.MethodPost,
			Action: page.Action,
		},
	}
	if view.AppTitle == "" {
		view.AppTitle = page.Form.Summary
	}
	if view.Form.Action == "" {
		view.Form.Action = "/"
	}

	input := page.Input.Normalized()
	for _, field := range page.Form.Fields {
		view.Form.Fields = append(view.Form.Fields, buildField(field, input))
	}

	if blocks, ok := results.Format(page.Result); ok {
		view.HasResult = true
		for _, block := range blocks {
			view.Blocks = append(view.Blocks, blockView{Kind: block.Kind, Text: block.Text})
		}
	}
	return view
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(StylesheetAsset)
	}
	return view
}

func buildField(field model.Field, input analysis.FormInput) fieldView {
	view := fieldView{
		Name:        field.Name,
		Label:       field.Label,
		Widget:      field.Widget,
		Required:    field.Required,
		Placeholder: field.Placeholder,
		Description: field.Description,
	}
	if field.IsGroup() {
		view.Widget = model.WidgetGroup
		for _, nested := range field.Nested {
			view.Checkboxes = append(view.Checkboxes, optionView{
				Value:   nested.Name,
				Label:   nested.Label,
				Checked: input.Factor(nested.Name),
			})
		}
		return view
	}

	value, err := input.Field(field.Name)
	if err != nil || value == "" {
		value = field.Default
	}
	view.Value = value
	for _, option := range field.Enum {
		view.Options = append(view.Options, optionView{Value: option, Label: option, Selected: option == value})
	}
	return view
}

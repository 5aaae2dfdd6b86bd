package tui

// Theme holds message prefixes the flow prints through PromptDriver.Info.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// DefaultTheme is used unless WithTheme overrides it.
var DefaultTheme = Theme{InfoPrefix: "› ", ErrorPrefix: "✗ "}

// Option configures a Flow.
type Option func(*Flow)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Flow) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Flow) {
		f.theme = theme
	}
}

// WithConfirm asks for confirmation before Run submits.
func WithConfirm(enabled bool) Option {
	return func(f *Flow) {
		f.confirm = enabled
	}
}

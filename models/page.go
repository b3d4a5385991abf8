package models

// Page is the template context of a rendered page. Validation results are
// reported as boolean flags such as "no_login" or "incorrect_email"; other
// keys carry values to display.
type Page map[string]any

// NewPage returns an empty page context.
func NewPage() Page {
	return make(Page)
}

// SetFlag raises the named boolean flag.
func (p Page) SetFlag(name string) {
	p[name] = true
}

// Flag reports whether the named flag is raised.
func (p Page) Flag(name string) bool {
	v, ok := p[name].(bool)
	return ok && v
}

// Set stores a display value.
func (p Page) Set(key string, value any) {
	p[key] = value
}

// Get returns a display value as a string, or "" when absent.
func (p Page) Get(key string) string {
	v, _ := p[key].(string)
	return v
}

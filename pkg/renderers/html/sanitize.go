package html

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// markupFilter cleans contract descriptions, which may carry inline HTML.
// Output still needs |safe in the template.
const markupFilter = "pestel_markup"

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

func markupFilterFunc(input any, _ any) (any, error) {
	if input == nil {
		return "", nil
	}
	return sanitizeMarkup(fmt.Sprint(input)), nil
}

// sanitizeMarkup keeps basic inline formatting and links, dropping scripts,
// styles and event handlers.
func sanitizeMarkup(raw string) string {
	return strings.TrimSpace(markupSanitizer().Sanitize(raw))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.UGCPolicy()
	})
	return markupPolicy
}

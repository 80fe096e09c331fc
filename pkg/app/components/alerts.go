package components

import (
	"strings"

	"github.com/kerbaras/storyline/pkg/app/styles"
)

// ErrorList renders flattened form errors as dismissible alert lines.
func ErrorList(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, err := range errs {
		b.WriteString(styles.ErrorStyle.Render("✗ " + err))
		b.WriteString("\n")
	}
	return b.String()
}

// ErrorLine renders a single feature error, or nothing.
func ErrorLine(err string) string {
	if err == "" {
		return ""
	}
	return styles.ErrorStyle.Render("Error: "+err) + "\n\n"
}

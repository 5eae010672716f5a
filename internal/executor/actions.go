package executor

import (
	"strings"
)

// field is one way of finding the live element behind a panel INPUT.
type field struct {
	selector string
	textarea bool
}

// fieldSelectors lists, in order, the candidates tried to find the live
// field a panel INPUT element refers to.
func fieldSelectors(target string) []field {
	if strings.TrimSpace(target) == "" {
		return nil
	}
	q := quote(target)
	return []field{
		{selector: `input[name=` + q + `]`},
		{selector: `textarea[name=` + q + `]`, textarea: true},
		{selector: `input[id=` + q + `]`},
		{selector: `textarea[id=` + q + `]`, textarea: true},
	}
}

// quote renders s as a double-quoted CSS string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\a `)
	return `"` + r.Replace(s) + `"`
}

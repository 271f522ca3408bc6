package errs

import (
	"fmt"
	"strings"
)

// sanitize renders a value on a single line so that it can be embedded into an error message.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
}

package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nathoo/racer/types"
)

// maxNameLen bounds the player name so the track line keeps room for stats.
const maxNameLen = 32

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled settings for values the game cannot use.
func validate(set *types.Settings, coll *collector) error {
	ve := &ValidationError{}

	if set.Name == "" {
		ve.Errors = append(ve.Errors, "Racer.name must not be empty")
	} else if len([]rune(set.Name)) > maxNameLen {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"Racer.name is longer than %d characters", maxNameLen))
	}

	if set.MaxInput < 0 {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"Racer.max_input must be >= 0, got %d", set.MaxInput))
	}

	for field, c := range map[string]string{
		"correct":   set.Colors.Correct,
		"incorrect": set.Colors.Incorrect,
		"highlight": set.Colors.Highlight,
		"status":    set.Colors.Status,
	} {
		if !validColor(c) {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"Colors.%s %q is not a palette index (0-255) or #RRGGBB", field, c))
		}
	}

	if len(set.QuitKeys) == 0 {
		ve.Errors = append(ve.Errors, "Keys.quit must name at least one key")
	}
	seen := map[string]bool{}
	for i, k := range set.QuitKeys {
		if k == "" {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"Keys.quit[%d] must be a non-empty string", i+1))
			continue
		}
		if seen[k] {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"Keys.quit lists %q more than once", k))
		}
		seen[k] = true
	}

	// Warnings: repeated constructor calls.
	for _, ctor := range []string{"Racer", "Colors", "Keys"} {
		if coll.calls[ctor] > 1 {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"%s called %d times; later fields override earlier ones", ctor, coll.calls[ctor]))
		}
	}

	// Print warnings to stderr.
	for _, w := range ve.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validColor accepts "" (terminal default), a 256-color palette index,
// or a #RRGGBB hex triple.
func validColor(c string) bool {
	if c == "" {
		return true
	}
	if strings.HasPrefix(c, "#") {
		if len(c) != 7 {
			return false
		}
		_, err := strconv.ParseUint(c[1:], 16, 32)
		return err == nil
	}
	n, err := strconv.Atoi(c)
	return err == nil && n >= 0 && n <= 255
}

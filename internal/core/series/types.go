package series

import (
	"errors"
	"fmt"
	"strings"
)

// DateField is the record key holding the ISO-8601 date of a record.
const DateField = "date"

// ErrInvalidConfig marks a caller contract violation (negative range, no props, ...).
var ErrInvalidConfig = errors.New("invalid series config")

// Record is one sparse input row: a date plus arbitrary named fields.
type Record map[string]interface{}

// Config selects which fields become series and how far back the window reaches.
type Config struct {
	Props   []string // value fields to chart, in display order
	SplitBy string   // optional categorical field; empty disables splitting
	Range   int      // trailing days before today; the window holds Range+1 days
}

// Validate rejects configurations whose output is undefined.
func (c Config) Validate() error {
	if c.Range < 0 {
		return invalidConfigf("range must be >= 0, got %d", c.Range)
	}
	if len(c.Props) == 0 {
		return invalidConfigf("at least one prop is required")
	}
	for _, prop := range c.Props {
		if strings.TrimSpace(prop) == "" {
			return invalidConfigf("props must not be blank")
		}
		if c.SplitBy == "" && prop == DateField {
			return invalidConfigf("prop %q collides with the row date key", prop)
		}
	}
	return nil
}

// ColumnKey identifies one output column. Without a split dimension only Prop is set.
type ColumnKey struct {
	SplitValue string
	Prop       string
	Split      bool
}

// String is the display name of the column: the prop, or "<splitValue> <prop>".
func (k ColumnKey) String() string {
	if !k.Split {
		return k.Prop
	}
	return k.SplitValue + " " + k.Prop
}

func invalidConfigf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

package tools

import (
	"context"
	"time"

	"convoy/pkg/toolreg"
)

// RegisterClock wires up a tool that reports the host's current time in
// RFC 3339 form, grounded on the date-stamping convention
// connachermurphy-twooms's OpenRouter system prompt builder hardcodes
// inline — here exposed as a real callable tool instead.
func RegisterClock(reg *toolreg.Registry, now func() time.Time) {
	reg.Register("current_time", "Returns the current date and time on the host machine, in RFC 3339 format.",
		nil,
		func(_ context.Context, _ string) (string, error) {
			return now().Format(time.RFC3339), nil
		})
}

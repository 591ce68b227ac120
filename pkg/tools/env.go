// Package tools implements the prebuilt (schema, handler) pairs the example
// CLI front-end registers: small, self-contained tools a model can call
// without the host needing to write any bespoke wiring per conversation.
package tools

import (
	"fmt"
	"os"
)

// GetEnvVar wraps os.LookupEnv, returning an error when name is unset — the
// host-process collaborator prebuilt tools use to read configuration that
// shouldn't be baked into a tool schema.
func GetEnvVar(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("tools: environment variable %q is not set", name)
	}
	return v, nil
}

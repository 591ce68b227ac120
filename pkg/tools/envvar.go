package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"convoy/pkg/toolreg"
)

// RegisterEnvVar wires GetEnvVar up as a model-callable tool that reads a
// single named environment variable from the host process.
func RegisterEnvVar(reg *toolreg.Registry) {
	reg.Register("read_env_var", "Reads the value of a named environment variable on the host machine.",
		[]toolreg.ParamSpec{
			{Name: "name", Type: "string", Description: "Name of the environment variable to read.", Required: true},
		},
		func(_ context.Context, arguments string) (string, error) {
			var args struct {
				Name string `json:"name"`
			}
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return "", fmt.Errorf("read_env_var: parse arguments: %w", err)
			}
			value, err := GetEnvVar(args.Name)
			if err != nil {
				return err.Error(), nil
			}
			return value, nil
		})
}

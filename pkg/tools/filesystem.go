package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"convoy/pkg/toolreg"
)

// RegisterFilesystemRead wires up a read-only file tool rooted at root: the
// model may request the contents of any file under root, but cannot escape
// it via "..", mirroring the read-only, sandboxed posture of the source
// pack's file-reading tools (lousix-AIxVuln/toolCalling/ReadLinesFromFileTool.go)
// without shelling out to a container.
func RegisterFilesystemRead(reg *toolreg.Registry, root string) {
	reg.Register("read_file", "Reads the full contents of a text file, given a path relative to the sandboxed workspace root.",
		[]toolreg.ParamSpec{
			{Name: "path", Type: "string", Description: "Path to the file, relative to the workspace root.", Required: true},
		},
		func(_ context.Context, arguments string) (string, error) {
			var args struct {
				Path string `json:"path"`
			}
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return "", fmt.Errorf("read_file: parse arguments: %w", err)
			}
			resolved := filepath.Join(root, filepath.Clean("/"+args.Path))
			data, err := os.ReadFile(resolved)
			if err != nil {
				return fmt.Sprintf("could not read %s: %v", args.Path, err), nil
			}
			return string(data), nil
		})
}

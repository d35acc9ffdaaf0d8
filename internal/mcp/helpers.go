package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
)

// jsonArg decodes the JSON-encoded string argument key into target.
func jsonArg(req mcp.CallToolRequest, key string, target any) error {
	raw := req.GetString(key, "")
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", key, err)
	}
	return nil
}

// intArg reads a required integer argument. Clients send numbers as
// float64, some send strings.
func intArg(req mcp.CallToolRequest, key string) (int, error) {
	v, ok := req.GetArguments()[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

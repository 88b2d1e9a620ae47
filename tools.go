//go:build tools

package tools

// Tool dependencies are tracked here with blank imports so that go.mod
// pins their versions. Run: go run github.com/vektra/mockery/v2 to
// regenerate mocks from .mockery.yaml.
import (
	_ "github.com/vektra/mockery/v2"
)

// internal/repository/postgres/outputs.go
package postgres

import (
	"strings"

	xerrors "gridiron-service/internal/pkg/errors"
)

// Helpers for decoding the generic output-parameter map into typed outcome
// structs. The dynamic map never leaves the repository layer: every call site
// knows which procedure it invoked, so it knows the output shape.

func outBool(out map[string]any, name string) bool {
	v, ok := out[strings.ToLower(name)]
	if !ok || v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

func outString(out map[string]any, name string) string {
	v, ok := out[strings.ToLower(name)]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

func outInt64(out map[string]any, name string) int64 {
	v, ok := out[strings.ToLower(name)]
	if !ok || v == nil {
		return 0
	}
	n, _ := asInt64(v)
	return n
}

// validationError marks a mechanical failure of a call whose contract never
// raises domain errors, so the message is not surfaceable wording.
func validationError(op, msg string) error {
	return xerrors.NewStoreError(xerrors.KindTransport, op, msg, nil)
}

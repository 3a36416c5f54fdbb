// export_test.go exports private hooks for white-box testing.
package ledger

// SetMarshal replaces the YAML encoder until the returned restore function runs.
func SetMarshal(fn func(any) ([]byte, error)) (restore func()) {
	prev := marshal
	marshal = fn
	return func() { marshal = prev }
}

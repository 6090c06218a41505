// Package apierrors provides structured error types for apidesc.
//
// Import path: github.com/erraggy/apidesc/apierrors
//
// The error types work with [errors.Is] and [errors.As], so callers can tell a
// declaration that simply is not an endpoint apart from one that is malformed.
//
// # Error Types
//
//   - [NotApplicableError]: the type or method lacks controller or mapping metadata
//   - [AmbiguousMappingError]: several body parameters, or an unknown verb attribute
//   - [ParseError]: Go source could not be loaded, or a directive is malformed
//   - [ConfigError]: invalid configuration
//   - [CatalogError]: the remote API catalog rejected a request
//
// # Sentinel Errors
//
// Each type matches a sentinel through errors.Is:
//
//	d, err := b.Build(method)
//	if errors.Is(err, apierrors.ErrNotApplicable) {
//	    fmt.Println("not an endpoint:", err)
//	    return nil
//	}
//
// A missing example value is never an error: the example is left empty.
package apierrors

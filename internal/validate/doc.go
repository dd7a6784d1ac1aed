// Package validate checks user input before it reaches the store.
//
// Validation is minimal: reject what would corrupt storage keys or the
// navigation tree (empty names, separators, null bytes, excessive sizes) and
// accept everything else. All errors wrap one of the sentinels in errors.go:
//
//	if errors.Is(err, validate.ErrInvalidTitle) {
//	    // handle empty title
//	}
package validate

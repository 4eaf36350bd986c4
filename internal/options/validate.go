// Package options provides validation shared by the functional option
// sets in inferrer and codegen.
package options

import "fmt"

// ValidateSingleInputSource checks that exactly one input source is
// set. Each bool in sources reports whether one source option was used;
// noSourceMsg and multiSourceMsg become the error for zero or multiple
// sources respectively.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	count := 0
	for _, set := range sources {
		if !set {
			continue
		}
		count++
		if count > 1 {
			return fmt.Errorf("%s", multiSourceMsg)
		}
	}
	if count == 0 {
		return fmt.Errorf("%s", noSourceMsg)
	}
	return nil
}

//go:build darwin && cgo

package osutils

/*
#cgo LDFLAGS: -framework ApplicationServices

#include <ApplicationServices/ApplicationServices.h>

// Check if we have accessibility permissions
bool hasAccessibilityPermissions() {
    return AXIsProcessTrusted();
}
*/
import "C"

// InputTrusted reports whether the process may post synthetic input events.
// macOS requires the Accessibility permission for CGEventPost.
func InputTrusted() bool {
	return bool(C.hasAccessibilityPermissions())
}

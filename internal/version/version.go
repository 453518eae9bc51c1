// ABOUTME: Version constants for tick
// ABOUTME: Reported by --version and logged at startup
package version

// Version is overridden at build time via -ldflags "-X"
var Version = "0.1.0"

const (
	Product      = "tick"
	Manufacturer = "harperreed"
)

// String returns the product and version for display
func String() string {
	return Product + " " + Version
}

// ABOUTME: Version and product identification constants
// ABOUTME: Single source of truth for build metadata
package version

const (
	// Version is the software version
	Version = "0.1.0"

	// Product is the product name
	Product = "Framecast Streamer"

	// Manufacturer identifies the project
	Manufacturer = "Framecast"
)

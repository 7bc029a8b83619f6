// =============================================================================
// Metadata Generator - Main Entry Point
// =============================================================================
//
// USAGE:
//   metagen field   generate | convert
//   metagen object  generate | convert | template
//   metagen profile generate | convert
//   metagen version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : parsing, validation, rendering, merging and reporting
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/metadata-generator/cmd"
)

func main() {
	cmd.Execute()
}

// Package liuren carries module-level metadata for the liuren tool.
package liuren

// Version is the release version of the module.
const Version = "0.3.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/liuren"

// Revision is the git revision of the build, set by the linker.
var Revision string

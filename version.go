package patchline

// Version is the semantic version of the patchline module, surfaced by the
// CLI's -version flag.
var Version = "v1.0.0"

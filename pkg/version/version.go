package version

// Version is the release version, overridden at build time with
// -ldflags "-X langcat/pkg/version.Version=...".
var Version = "v0.3.0"

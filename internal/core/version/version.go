package version

// Version is overridden at build time with
// -ldflags "-X github.com/guiyumin/vlink/internal/core/version.Version=..."
var Version = "0.1.0"

package internal

// Version is the application version, overridable at build time via
// -ldflags "-X codeberg.org/snonux/mealie-translate/internal.Version=...".
var Version = "0.1.0"

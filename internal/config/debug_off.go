//go:build !debug

package config

// Debug enables verbose diagnostics: missing uniform warnings, GL error
// checks and accumulation reset logging. Build with -tags debug to turn it on.
const Debug = false

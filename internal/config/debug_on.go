//go:build debug

package config

const Debug = true

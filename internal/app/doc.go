// Package app contains the core application logic. It defines the App
// struct, its configuration and the evaluation lifecycle, decoupled from any
// specific entrypoint like a CLI.
package app

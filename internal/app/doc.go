// Package app is the reference host. It owns the registries and event bus,
// loads the compiled-in modules through the plugin entry-point protocol,
// raises the start event, executes configured jobs, and optionally relays
// cgrpc traffic from a socket.io endpoint. It is decoupled from any
// specific entrypoint like a CLI.
package app

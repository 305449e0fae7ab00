// Package events holds the built-in events the host itself raises. Modules
// register handlers for them under the identifiers declared here.
package events

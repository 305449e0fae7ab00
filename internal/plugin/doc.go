// Package plugin defines the module entry-point protocol.
//
// A module exposes two entry points: Metadata, which returns a static
// description of the module and has no side effects, and Run, which performs
// every registration (tasks, event types, handlers) against the host handle
// it is given. The Loader calls Metadata, validates it, then calls Run
// exactly once per module id.
package plugin

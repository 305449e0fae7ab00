// Package testutil provides shared helpers for integration tests: a
// thread-safe log buffer, an App harness, mock modules and a concurrency
// tracker task.
package testutil

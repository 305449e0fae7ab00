// Package registry provides the host-owned mapping from Identifier to
// registered implementation used for both tasks and event handlers.
//
// A Registry is populated once while modules load and read many times
// afterwards. What happens when a second registration arrives for an
// identifier that is already claimed is decided by the registry's Policy:
//
//   - reject:    the second registration fails with DuplicateRegistrationError.
//   - overwrite: the second registration replaces the first.
//   - append:    both are kept, in registration order (fan-out).
//
// The task registry always uses reject. The handler registry's policy is a
// host configuration choice.
package registry

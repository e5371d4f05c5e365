// Package types defines the Store and ClientTable interfaces, the Client
// entity, and the standard error types for the clientbook storage layer.
package types

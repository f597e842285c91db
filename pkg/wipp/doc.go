// Package wipp defines the public API surface for the WIPP client library:
// entity types, the resource-kind registry, the error taxonomy, pagination
// envelope types, and the client interfaces.
//
// Use github.com/polusai/wipp-client/pkg/wippclient to construct a client.
package wipp

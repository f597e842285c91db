// Package wippclient provides the main entry point for creating WIPP API
// clients. It validates and normalizes the endpoint configuration and wires
// the internal client implementation.
package wippclient

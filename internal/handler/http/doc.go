// Package http implements the REST API of go-hds-keeper.
//
// Every record route is authenticated: the bearer token's subject becomes the
// actor that fields are encrypted for and that audit events are attributed
// to. Request tracing, access logging and response compression are applied
// before requests are delegated to the service layer.
package http

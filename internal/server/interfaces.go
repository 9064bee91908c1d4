package server

// Server is the lifecycle of the HTTP transport.
type Server interface {
	// RunServer serves until a stop signal arrives or the listener fails.
	RunServer()

	// Shutdown stops accepting requests and waits for in-flight ones, bounded
	// by the configured shutdown timeout.
	Shutdown()
}

package server

// Server is the lifecycle of the process-level server: the HTTP listener
// together with the background workers.
type Server interface {
	// RunServer serves until a termination signal arrives or the listener
	// fails, then shuts down. Only a listener failure is returned.
	RunServer() error

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown()
}

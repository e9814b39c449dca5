package messaging

import "time"

// NatsServerOpt adjusts the embedded server before it is created.
type NatsServerOpt func(*NatsServer)

// WithStartTimeout bounds how long Start waits for the server to accept
// clients.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithListenAddr binds the bus to host:port. An empty host keeps loopback
// and a zero port keeps a free port.
func WithListenAddr(host string, port int) NatsServerOpt {
	return func(n *NatsServer) {
		if host != "" {
			n.serverOpts.Host = host
		}
		if port != 0 {
			n.serverOpts.Port = port
		}
	}
}

// WithMaxPayload caps the size of a single player message in bytes.
func WithMaxPayload(bytes int32) NatsServerOpt {
	return func(n *NatsServer) {
		n.serverOpts.MaxPayload = bytes
	}
}

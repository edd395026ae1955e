package params

// ListenerConfig is where a daemon listens, eg. tcp localhost:3000 or unix /tmp/catpace.sock.
type ListenerConfig struct {
	Network string
	Address string
}

type WebDaemonConfig struct {
	ListenerConfig

	// MaxBodyBytes limits uploaded GPX documents.
	MaxBodyBytes int64

	Job JobConfig
}

func DefaultWebListenerConfig() ListenerConfig {
	return ListenerConfig{
		Network: "tcp",
		Address: "localhost:3000",
	}
}

func DefaultWebDaemonConfig() *WebDaemonConfig {
	return &WebDaemonConfig{
		ListenerConfig: DefaultWebListenerConfig(),
		MaxBodyBytes:   32 << 20,
		Job:            *DefaultJobConfig(),
	}
}

func DefaultTestWebDaemonConfig() *WebDaemonConfig {
	d := DefaultWebDaemonConfig()
	d.ListenerConfig = ListenerConfig{
		Network: "tcp",
		Address: "localhost:3333",
	}
	d.Job.Elevation.Backend = ElevationNone
	return d
}

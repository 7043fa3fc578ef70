package alert

import "time"

// Config configures the Sentinel alert provider.
type Config struct {
	// Disable turns SendError into a no-op and skips dialing Sentinel.
	Disable bool `yaml:"disable" default:"false"`

	// SentinelHost is the hostname or IP address of the Sentinel service.
	SentinelHost string `yaml:"sentinel_host" validate:"required_unless=Disable true"`

	// SentinelPort is the gRPC port of the Sentinel service.
	SentinelPort int `yaml:"sentinel_port" validate:"required_unless=Disable true"`

	// SendTimeout bounds a single alert delivery.
	SendTimeout time.Duration `yaml:"send_timeout" default:"3s"`
}

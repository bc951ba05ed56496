package component

// Component name constants.
const (
	ComponentConfig    = "config"
	ComponentLogger    = "logger"
	ComponentHook      = "hook"      // hook dispatch component
	ComponentPlugin    = "plugin"    // plugin manager component
	ComponentKafka     = "kafka"     // kafka producer component
	ComponentBanlist   = "banlist"   // ban store component
	ComponentHealth    = "health"    // health check aggregator
	ComponentTelemetry = "telemetry" // otel metrics bootstrap
)

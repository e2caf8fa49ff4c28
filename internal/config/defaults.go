package config

const (
	DefaultLanguage    = "en"
	DefaultConcurrency = 1
)

// ApplyDefaults fills unset fields. Languages is only defaulted when absent;
// an explicit empty list is left for Validate to reject.
func (c *Config) ApplyDefaults() {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
	if c.Languages == nil {
		c.Languages = []string{DefaultLanguage}
	}
	if c.Concurrency == 0 {
		c.Concurrency = DefaultConcurrency
	}
}

package param

// Config holds request parameter settings loaded from the environment.
type Config struct {
	MaxBodySize int64 `env:"PARAM_MAX_BODY_SIZE" envDefault:"1048576"` // MaxBodySize limits how many body bytes are read per request.
}

// Options converts the config into Request options.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 1)
	if c.MaxBodySize > 0 {
		opts = append(opts, WithMaxBodySize(c.MaxBodySize))
	}
	return opts
}

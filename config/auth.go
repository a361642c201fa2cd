package config

import "time"

type Auth struct {
	Issuer   string        `mapstructure:"ISSUER" json:"issuer" yaml:"issuer"`
	TokenTTL time.Duration `mapstructure:"TOKEN_TTL" json:"token_ttl" yaml:"token_ttl"`
	// websocket 允許的 Origin（host pattern）；空值只接受同源
	OriginPatterns []string `mapstructure:"ORIGIN_PATTERNS" json:"origin_patterns" yaml:"origin_patterns"`
}

func (a Auth) TokenLifetime() time.Duration {
	if a.TokenTTL <= 0 {
		return 24 * time.Hour
	}
	return a.TokenTTL
}

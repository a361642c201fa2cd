package config

type MongoDB struct {
	URI     string `mapstructure:"URI" json:"uri" yaml:"uri"`
	Options string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	// 空值時使用 core.MongoDBPropertyOps
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
}

package config

type Notification struct {
	// 排程通知的收件人（ObjectID hex）；空值時寄給 owner/admin
	RecipientIDs []string `mapstructure:"RECIPIENT_IDS" json:"recipient_ids" yaml:"recipient_ids"`
	// 可看到 action=delete 通知的使用者
	PrivilegedIDs []string `mapstructure:"PRIVILEGED_IDS" json:"privileged_ids" yaml:"privileged_ids"`
}

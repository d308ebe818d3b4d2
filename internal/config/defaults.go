package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Content.BaseURL == "" {
		cfg.Content.BaseURL = "https://api.notion.com"
	}
	if cfg.Content.APIVersion == "" {
		cfg.Content.APIVersion = "2022-06-28"
	}
	if cfg.Content.TimeoutSeconds == 0 {
		cfg.Content.TimeoutSeconds = 15
	}
	if cfg.Search.DefaultLanguage == "" {
		cfg.Search.DefaultLanguage = "English"
	}
	if cfg.Search.HydrationLimit == 0 {
		cfg.Search.HydrationLimit = 10
	}
	if cfg.Search.MaxResults == 0 {
		cfg.Search.MaxResults = 20
	}
	cfg.Search.Ranking.ApplyDefaults()
	if cfg.Storage.CommentsPath == "" {
		cfg.Storage.CommentsPath = "/usr/local/var/shirabe/data/comments.db"
	}
	if cfg.Mail.BaseURL == "" {
		cfg.Mail.BaseURL = "https://api.resend.com"
	}
}

package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitRPS == 0 {
		cfg.Server.RateLimitRPS = 50
	}
	if cfg.Server.RateLimitBurst == 0 {
		cfg.Server.RateLimitBurst = 100
	}
	if cfg.Server.SessionTTLMinutes == 0 {
		cfg.Server.SessionTTLMinutes = 30
	}
	if cfg.Source.Path == "" && cfg.Source.URL == "" {
		cfg.Source.Path = "/usr/local/var/meibo/data/profiles.json"
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = 10
	}
	if cfg.Search.FuzzyMinTermLength == 0 {
		cfg.Search.FuzzyMinTermLength = 4
	}
	if cfg.Search.FuzzyMinWordLength == 0 {
		cfg.Search.FuzzyMinWordLength = 3
	}
	if cfg.Search.FuzzyThreshold == 0 {
		cfg.Search.FuzzyThreshold = 0.7
	}
	if cfg.Search.SuggestionLimit == 0 {
		cfg.Search.SuggestionLimit = 8
	}
	if cfg.Search.MinSuggestionInput == 0 {
		cfg.Search.MinSuggestionInput = 2
	}
	if cfg.Score.NameWeight == 0 {
		cfg.Score.NameWeight = 10
	}
	if cfg.Score.ProfessionalWeight == 0 {
		cfg.Score.ProfessionalWeight = 5
	}
	if cfg.Score.TagWeight == 0 {
		cfg.Score.TagWeight = 5
	}
	if cfg.Score.PersonalWeight == 0 {
		cfg.Score.PersonalWeight = 2
	}
	if cfg.Score.LocationWeight == 0 {
		cfg.Score.LocationWeight = 3
	}
	if cfg.Similarity.LocationWeight == 0 {
		cfg.Similarity.LocationWeight = 0.3
	}
	if cfg.Similarity.TagWeight == 0 {
		cfg.Similarity.TagWeight = 0.4
	}
	if cfg.Similarity.KeywordWeight == 0 {
		cfg.Similarity.KeywordWeight = 0.1
	}
}

package config

// StorageConfig holds the content store settings.
type StorageConfig struct {
	ContentDir string `yaml:"content_dir" env:"LM_CONTENT_DIR" env-default:"content/images"`
}

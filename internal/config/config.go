package config

// Config is the root application configuration for the importer.
type Config struct {
	Meili  MeiliConfig  `yaml:"meili"`
	Import ImporterConfig `yaml:"import"`
	Log    LogConfig    `yaml:"log"`
}

// MeiliConfig holds connection settings for the Meilisearch backend.
type MeiliConfig struct {
	URL   string `yaml:"url"   env:"MEILI_URL"   env-default:"http://localhost:7700"`
	Key   string `yaml:"key"   env:"MEILI_KEY"`
	Index string `yaml:"index" env:"MEILI_INDEX" env-default:"words"`
}

// ImporterConfig holds the acquisition/parse/upload settings for a run.
type ImporterConfig struct {
	// XMLPath points at a local WordNet LMF XML file. When empty, the
	// file is downloaded from SourceURL into a scratch directory first.
	XMLPath string `yaml:"xml_path" env:"XML_PATH"`

	SourceURL string `yaml:"source_url" env:"SOURCE_URL" env-default:"https://en-word.net/static/english-wordnet-2024.xml.gz"`

	// SkipUpload parses and transforms the lexicon but never talks to
	// Meilisearch. Useful for dry runs and CI.
	SkipUpload bool `yaml:"skip_upload" env:"SKIP_UPLOAD" env-default:"false"`

	BatchSize   int `yaml:"batch_size"   env:"BATCH_SIZE"   env-default:"1000"`
	WorkerCount int `yaml:"worker_count" env:"WORKER_COUNT" env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

package controlplane

// Config holds configuration for the AWS control plane clients.
type Config struct {
	// Account is the twelve digit account whose buckets are reconciled.
	Account string `mapstructure:"account" default:""`
	// Region limits reconciliation to buckets in this region.
	Region string `mapstructure:"region" default:"us-east-1"`
	// Profile selects a shared config profile. Empty uses the default chain.
	Profile string `mapstructure:"profile" default:""`
	// Endpoint overrides the S3 endpoint, for S3-compatible services.
	Endpoint string `mapstructure:"endpoint" default:""`
	// AccessKey and SecretKey, when both set, replace the default credential chain.
	AccessKey string `mapstructure:"access_key" default:""`
	SecretKey string `mapstructure:"secret_key" default:""`
	// UsePathStyle forces path-style bucket addressing.
	UsePathStyle bool `mapstructure:"use_path_style" default:"false"`
	// TimeoutSeconds bounds connection setup and the first response byte.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// SummaryModel is the Bedrock model that writes rule summaries.
	SummaryModel string `mapstructure:"summary_model" default:"amazon.nova-lite-v1:0"`
}

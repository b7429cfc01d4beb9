package models

// S3Destination describes the S3-compatible storage the gallery uploads to.
// Filled from the "storage" section of the settings file.
type S3Destination struct {
	Region        string `json:"region" mapstructure:"region"`
	Path          string `json:"path" mapstructure:"path"`
	Bucket        string `json:"bucket" mapstructure:"bucket"`
	Endpoint      string `json:"endpoint" mapstructure:"endpoint"`
	SecretID      string `json:"secret_id" mapstructure:"secret_id"`
	SecretKey     string `json:"secret_key" mapstructure:"secret_key"`
	AccessBaseURL string `json:"access_baseurl" mapstructure:"access_baseurl"`
	EnableSSL     bool   `json:"enable_ssl" mapstructure:"enable_ssl"`
}

package types

import "time"

// Product is the catalog entity as returned by the products API
type Product struct {
	ID          int64   `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
}

// ProductInput is the request body for create and update
type ProductInput struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
}

// Call is one API call recorded in the activity log
type Call struct {
	ID         int64     `json:"id" yaml:"id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Method     string    `json:"method" yaml:"method"`
	Path       string    `json:"path" yaml:"path"`
	Status     int       `json:"status" yaml:"status"`
	DurationMs int64     `json:"durationMs" yaml:"durationMs"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// TLSConfig holds TLS/mTLS settings for the API client
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty" yaml:"cert_file,omitempty"`
	KeyFile            string `json:"keyFile,omitempty" yaml:"key_file,omitempty"`
	CAFile             string `json:"caFile,omitempty" yaml:"ca_file,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

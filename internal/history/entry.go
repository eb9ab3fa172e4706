package history

import "time"

// Record is one completed rename
type Record struct {
	// Variant is the build variant the artifact belongs to
	Variant string `json:"variant"`

	// Task is the rename task that produced the record
	Task string `json:"task"`

	// From is the absolute path of the artifact before the rename
	From string `json:"from"`

	// To is the absolute path after the rename
	To string `json:"to"`

	// AppName is the application name used for the new file name
	AppName string `json:"app_name"`

	// VersionName and VersionCode of the variant
	VersionName string `json:"version_name"`
	VersionCode int    `json:"version_code"`

	// SHA256 of the renamed artifact
	SHA256 string `json:"sha256,omitempty"`

	// Timestamp when the rename happened
	Timestamp time.Time `json:"timestamp"`
}

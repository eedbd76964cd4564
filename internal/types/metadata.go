package types

// Metadata is a free-form string map attached to records and notifications
type Metadata map[string]string

package api

// Shared wire types used by several endpoint groups. Field names mirror
// the backend's JSON exactly.

// Param describes a configurable parameter of a data source, variable or
// pipeline component type.
type Param struct {
	Key          string `json:"key"`
	Required     bool   `json:"required"`
	DefaultValue string `json:"defaultValue"`
	Description  string `json:"description"`
}

// KeyValue is a single configured parameter value.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// DataSourceRef is the abbreviated data source reference returned inside
// type listings.
type DataSourceRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

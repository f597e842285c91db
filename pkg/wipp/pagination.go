package wipp

import "encoding/json"

// PageMetadata mirrors the "page" object of a HAL list envelope.
type PageMetadata struct {
	Size          int `json:"size"          yaml:"size"`
	TotalElements int `json:"totalElements" yaml:"totalElements"`
	TotalPages    int `json:"totalPages"    yaml:"totalPages"`
	Number        int `json:"number"        yaml:"number"`
}

// ListEnvelope is the paginated wrapper returned by every WIPP list endpoint.
// Records are nested under a per-kind key inside "_embedded".
type ListEnvelope struct {
	Embedded map[string][]json.RawMessage `json:"_embedded"`
	Page     PageMetadata                 `json:"page"`
}

// Records returns the raw record array for the given resource kind, in
// service order. The lookup key is RecordKey(kind), which differs from the
// kind itself for the service's known plural inconsistencies.
func (e *ListEnvelope) Records(kind string) []json.RawMessage {
	return e.Embedded[RecordKey(kind)]
}

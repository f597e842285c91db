package wipp

import (
	"encoding/json"
	"time"
)

// Resource-kind path segments used by the WIPP API. File kinds are only
// reachable nested under their owning collection kind.
const (
	KindImageCollections       = "imagesCollections"
	KindImages                 = "images"
	KindCsvCollections         = "csvCollections"
	KindCsv                    = "csv"
	KindGenericDataCollections = "genericDatas"
	KindGenericFiles           = "genericFile"
	KindPlugins                = "plugins"
)

// Entity is the union of all typed records returned by the WIPP API. Kind
// reports the resource-kind segment the record belongs to.
type Entity interface {
	Kind() string
}

// Collection is the header shared by every WIPP collection variant. ID and
// CreationDate are assigned by the service on create and are absent on
// locally constructed values.
type Collection struct {
	ID           string     `json:"id,omitempty"           yaml:"id,omitempty"`
	Name         string     `json:"name"                   yaml:"name"`
	CreationDate *time.Time `json:"creationDate,omitempty" yaml:"creationDate,omitempty"`
	Locked       *bool      `json:"locked,omitempty"       yaml:"locked,omitempty"`
	SourceJob    *string    `json:"sourceJob,omitempty"    yaml:"sourceJob,omitempty"`
}

// ImageCollection represents a WIPP image collection.
type ImageCollection struct {
	Collection `yaml:",inline"`

	ImagesTotalSize        *int64  `json:"imagesTotalSize,omitempty"        yaml:"imagesTotalSize,omitempty"`
	ImportMethod           *string `json:"importMethod,omitempty"           yaml:"importMethod,omitempty"`
	MetadataFilesTotalSize *int64  `json:"metadataFilesTotalSize,omitempty" yaml:"metadataFilesTotalSize,omitempty"`
	Notes                  *string `json:"notes,omitempty"                  yaml:"notes,omitempty"`
	NumberImportingImages  *int    `json:"numberImportingImages,omitempty"  yaml:"numberImportingImages,omitempty"`
	NumberOfImages         *int    `json:"numberOfImages,omitempty"         yaml:"numberOfImages,omitempty"`
	NumberOfImportErrors   *int    `json:"numberOfImportErrors,omitempty"   yaml:"numberOfImportErrors,omitempty"`
	NumberOfMetadataFiles  *int    `json:"numberOfMetadataFiles,omitempty"  yaml:"numberOfMetadataFiles,omitempty"`
	Pattern                *string `json:"pattern,omitempty"                yaml:"pattern,omitempty"`
	SourceCatalog          *string `json:"sourceCatalog,omitempty"          yaml:"sourceCatalog,omitempty"`
}

// Kind implements Entity.
func (ImageCollection) Kind() string { return KindImageCollections }

// CsvCollection represents a WIPP CSV collection.
type CsvCollection struct {
	Collection `yaml:",inline"`

	CsvTotalSize         *int64 `json:"csvTotalSize,omitempty"         yaml:"csvTotalSize,omitempty"`
	NumberImportingCsv   *int   `json:"numberImportingCsv,omitempty"   yaml:"numberImportingCsv,omitempty"`
	NumberOfCsvFiles     *int   `json:"numberOfCsvFiles,omitempty"     yaml:"numberOfCsvFiles,omitempty"`
	NumberOfImportErrors *int   `json:"numberOfImportErrors,omitempty" yaml:"numberOfImportErrors,omitempty"`
}

// Kind implements Entity.
func (CsvCollection) Kind() string { return KindCsvCollections }

// GenericDataCollection represents a WIPP generic data collection.
type GenericDataCollection struct {
	Collection `yaml:",inline"`

	Description   *string `json:"description,omitempty"   yaml:"description,omitempty"`
	FileTotalSize *int64  `json:"fileTotalSize,omitempty" yaml:"fileTotalSize,omitempty"`
	Metadata      *string `json:"metadata,omitempty"      yaml:"metadata,omitempty"`
	NumberOfFiles *int    `json:"numberOfFiles,omitempty" yaml:"numberOfFiles,omitempty"`
	Type          *string `json:"type,omitempty"          yaml:"type,omitempty"`
}

// Kind implements Entity.
func (GenericDataCollection) Kind() string { return KindGenericDataCollections }

// Image represents one file inside an image collection.
type Image struct {
	FileName         string  `json:"fileName"                   yaml:"fileName"`
	OriginalFileName *string `json:"originalFileName,omitempty" yaml:"originalFileName,omitempty"`
	FileSize         int64   `json:"fileSize"                   yaml:"fileSize"`
	Importing        *bool   `json:"importing,omitempty"        yaml:"importing,omitempty"`
	ImportError      *string `json:"importError,omitempty"      yaml:"importError,omitempty"`
}

// Kind implements Entity.
func (Image) Kind() string { return KindImages }

// Csv represents one file inside a CSV collection.
type Csv struct {
	FileName         string  `json:"fileName"                   yaml:"fileName"`
	OriginalFileName *string `json:"originalFileName,omitempty" yaml:"originalFileName,omitempty"`
	FileSize         int64   `json:"fileSize"                   yaml:"fileSize"`
	Importing        *bool   `json:"importing,omitempty"        yaml:"importing,omitempty"`
	ImportError      *string `json:"importError,omitempty"      yaml:"importError,omitempty"`
}

// Kind implements Entity.
func (Csv) Kind() string { return KindCsv }

// GenericDataFile represents one file inside a generic data collection.
type GenericDataFile struct {
	FileName         string  `json:"fileName"                   yaml:"fileName"`
	OriginalFileName *string `json:"originalFileName,omitempty" yaml:"originalFileName,omitempty"`
	FileSize         int64   `json:"fileSize"                   yaml:"fileSize"`
}

// Kind implements Entity.
func (GenericDataFile) Kind() string { return KindGenericFiles }

// Plugin represents a WIPP plugin manifest.
type Plugin struct {
	ID           string     `json:"id,omitempty"           yaml:"id,omitempty"`
	Name         string     `json:"name"                   yaml:"name"`
	Version      string     `json:"version"                yaml:"version"`
	ContainerID  string     `json:"containerId"            yaml:"containerId"`
	Title        string     `json:"title"                  yaml:"title"`
	Description  string     `json:"description"            yaml:"description"`
	Author       *string    `json:"author,omitempty"       yaml:"author,omitempty"`
	Citation     *string    `json:"citation,omitempty"     yaml:"citation,omitempty"`
	Institution  *string    `json:"institution,omitempty"  yaml:"institution,omitempty"`
	Repository   *string    `json:"repository,omitempty"   yaml:"repository,omitempty"`
	Website      *string    `json:"website,omitempty"      yaml:"website,omitempty"`
	CreationDate *time.Time `json:"creationDate,omitempty" yaml:"creationDate,omitempty"`

	Inputs  []PluginParameter `json:"inputs"  yaml:"inputs"`
	Outputs []PluginParameter `json:"outputs" yaml:"outputs"`
	UI      []PluginUIField   `json:"ui"      yaml:"ui"`
}

// Kind implements Entity.
func (Plugin) Kind() string { return KindPlugins }

// PluginParameter describes one input or output of a plugin. Type is an open
// vocabulary understood by the service ("collection", "genericData", "string",
// ...); the client passes it through unvalidated.
type PluginParameter struct {
	Name        string                 `json:"name"                  yaml:"name"`
	Type        string                 `json:"type"                  yaml:"type"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`
	Required    *bool                  `json:"required,omitempty"    yaml:"required,omitempty"`
	Options     map[string]interface{} `json:"options,omitempty"     yaml:"options,omitempty"`
}

// PluginUIField describes one entry of a plugin's UI definition.
type PluginUIField struct {
	Key         string `json:"key"                   yaml:"key"`
	Title       string `json:"title"                 yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// GenericEntity carries the raw fields of a record whose resource kind has no
// specialized shape. It round-trips through JSON unchanged.
type GenericEntity struct {
	EntityKind string
	Fields     map[string]interface{}
}

// Kind implements Entity.
func (e GenericEntity) Kind() string { return e.EntityKind }

// ID returns the record's id field, or "" when absent.
func (e GenericEntity) ID() string { return e.stringField("id") }

// Name returns the record's name field, or "" when absent.
func (e GenericEntity) Name() string { return e.stringField("name") }

func (e GenericEntity) stringField(name string) string {
	if v, ok := e.Fields[name].(string); ok {
		return v
	}

	return ""
}

// MarshalJSON serializes only the raw fields.
func (e GenericEntity) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields)
}

// UnmarshalJSON populates the raw fields; the kind must be set by the caller.
func (e *GenericEntity) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &e.Fields)
}

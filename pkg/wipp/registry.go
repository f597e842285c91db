package wipp

import (
	"encoding/json"
	"fmt"
)

// ParseFunc parses one raw JSON record into a typed entity.
type ParseFunc func(data []byte) (Entity, error)

type registration struct {
	recordKey string
	parse     ParseFunc
}

// registry maps a resource kind to the envelope key its records nest under
// and the parser producing the concrete entity shape. Kinds without an entry
// fall back to GenericEntity, so an unrecognized but well-formed kind never
// fails outright.
var registry = map[string]registration{
	KindImageCollections:       {KindImageCollections, parseRecord[ImageCollection]},
	KindImages:                 {KindImages, parseRecord[Image]},
	KindCsvCollections:         {KindCsvCollections, parseRecord[CsvCollection]},
	KindGenericDataCollections: {KindGenericDataCollections, parseRecord[GenericDataCollection]},
	KindPlugins:                {KindPlugins, parseRecord[Plugin]},

	// The backend nests these two kinds under a key that is not the kind
	// itself. See https://github.com/usnistgov/WIPP-backend/issues/176.
	KindCsv:          {"csvs", parseRecord[Csv]},
	KindGenericFiles: {"genericFiles", parseRecord[GenericDataFile]},
}

// RecordKey returns the "_embedded" key under which records of the given
// resource kind are nested. For most kinds this is the kind itself.
func RecordKey(kind string) string {
	if reg, ok := registry[kind]; ok {
		return reg.recordKey
	}

	return kind
}

// ParseEntity parses one raw JSON record of the given resource kind into its
// registered entity shape, or into a GenericEntity for unregistered kinds.
func ParseEntity(kind string, data []byte) (Entity, error) {
	if reg, ok := registry[kind]; ok {
		return reg.parse(data)
	}

	var entity GenericEntity

	err := json.Unmarshal(data, &entity)
	if err != nil {
		return nil, fmt.Errorf("%w: %s record is not a JSON object: %v", ErrMalformedRecord, kind, err)
	}

	entity.EntityKind = kind

	return entity, nil
}

// RegisterKind adds or replaces a resource kind in the registry. recordKey ""
// means the records nest under the kind itself. Intended for service
// deployments exposing kinds this library has no specialized shape for.
func RegisterKind(kind, recordKey string, parse ParseFunc) {
	if recordKey == "" {
		recordKey = kind
	}

	registry[kind] = registration{recordKey: recordKey, parse: parse}
}

// validatable is implemented by entity shapes with required fields.
type validatable interface {
	validate() error
}

func parseRecord[T Entity](data []byte) (Entity, error) {
	var record T

	err := json.Unmarshal(data, &record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	if v, ok := any(record).(validatable); ok {
		err = v.validate()
		if err != nil {
			return nil, err
		}
	}

	return record, nil
}

func (c Collection) validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: collection record missing name", ErrMalformedRecord)
	}

	return nil
}

func (i Image) validate() error {
	if i.FileName == "" {
		return fmt.Errorf("%w: image record missing fileName", ErrMalformedRecord)
	}

	return nil
}

func (c Csv) validate() error {
	if c.FileName == "" {
		return fmt.Errorf("%w: csv record missing fileName", ErrMalformedRecord)
	}

	return nil
}

func (f GenericDataFile) validate() error {
	if f.FileName == "" {
		return fmt.Errorf("%w: generic data file record missing fileName", ErrMalformedRecord)
	}

	return nil
}

func (p Plugin) validate() error {
	for field, value := range map[string]string{
		"name":        p.Name,
		"version":     p.Version,
		"containerId": p.ContainerID,
		"title":       p.Title,
		"description": p.Description,
	} {
		if value == "" {
			return fmt.Errorf("%w: plugin record missing %s", ErrMalformedRecord, field)
		}
	}

	return nil
}

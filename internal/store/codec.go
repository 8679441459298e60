package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tidwall/gjson"
)

// Snapshot payload versions.
//
//	1: initial release
//	2: adds addToArsenalDone
const (
	SchemaV1             = 1
	SchemaV2             = 2
	CurrentSchemaVersion = SchemaV2
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON []byte

const snapshotSchemaURL = "schema://southpaw/snapshot.json"

var (
	schemaOnce     sync.Once
	snapshotSchema *jsonschema.Schema
	schemaErr      error
)

// compiledSchema compiles the embedded snapshot schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(snapshotSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse snapshot schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(snapshotSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		snapshotSchema, schemaErr = c.Compile(snapshotSchemaURL)
	})
	return snapshotSchema, schemaErr
}

// EncodeSnapshot serializes data at the current schema version.
func EncodeSnapshot(data SnapshotData) ([]byte, error) {
	data.Version = CurrentSchemaVersion
	if data.Units == nil {
		data.Units = []UnitRecord{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return raw, nil
}

// DecodeSnapshot parses a stored snapshot payload of any known version.
// Fields missing from older payloads take their zero value. Payloads that
// are not valid JSON or do not match the snapshot shape return
// *ErrCorruptSnapshot.
func DecodeSnapshot(raw []byte) (SnapshotData, error) {
	if !gjson.ValidBytes(raw) {
		return SnapshotData{}, &ErrCorruptSnapshot{Content: raw, Err: fmt.Errorf("invalid JSON")}
	}

	sch, err := compiledSchema()
	if err != nil {
		return SnapshotData{}, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return SnapshotData{}, &ErrCorruptSnapshot{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := sch.Validate(inst); err != nil {
		return SnapshotData{}, &ErrCorruptSnapshot{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	doc := gjson.ParseBytes(raw)
	data := SnapshotData{
		Version:    SchemaV1,
		AppVersion: doc.Get("appVersion").String(),
	}
	if v := doc.Get("version"); v.Exists() {
		data.Version = int(v.Int())
	}

	units := doc.Get("units").Array()
	data.Units = make([]UnitRecord, 0, len(units))
	for _, u := range units {
		data.Units = append(data.Units, UnitRecord{
			UnitID:                  int(u.Get("unitId").Int()),
			DrillDone:               u.Get("drillDone").Bool(),
			AddToArsenalDone:        u.Get("addToArsenalDone").Bool(),
			ProgressionSessionsDone: int(u.Get("progressionSessionsDone").Int()),
			ExamPassed:              u.Get("examPassed").Bool(),
			IsUnlocked:              u.Get("isUnlocked").Bool(),
		})
	}
	return data, nil
}

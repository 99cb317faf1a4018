package progression

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"skill-evolve-service/internal/domain"
)

const saveSchemaURL = "schema://save.json"

//go:embed save_schema.json
var saveSchemaJSON []byte

var (
	saveSchemaOnce sync.Once
	saveSchema     *jsonschema.Schema
	saveSchemaErr  error
)

// EncodeState serializes the persisted fields of a player. Missing tracks and a nil
// collection are filled in first so the record always decodes.
func EncodeState(state *PersistedState) ([]byte, error) {
	state.normalize()
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}

// DecodeState parses a saved record. Fields an older record lacks keep their defaults.
// Anything that does not fit the save shape fails with domain.ErrDataCorruption.
func DecodeState(data []byte) (*PersistedState, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrDataCorruption, err)
	}

	schema, err := compiledSaveSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataCorruption, err)
	}

	state := NewPersistedState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataCorruption, err)
	}
	state.normalize()
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataCorruption, err)
	}
	return state, nil
}

func compiledSaveSchema() (*jsonschema.Schema, error) {
	saveSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(saveSchemaJSON, &def); err != nil {
			saveSchemaErr = fmt.Errorf("parse save schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(saveSchemaURL, def); err != nil {
			saveSchemaErr = fmt.Errorf("add save schema: %w", err)
			return
		}
		saveSchema, saveSchemaErr = c.Compile(saveSchemaURL)
	})
	return saveSchema, saveSchemaErr
}

package beeps

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const createSchemaURL = "https://beeps.togather.foundation/schemas/create_beep.schema.json"

//go:embed schemas/create_beep.schema.json
var createSchemaJSON []byte

var createSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(createSchemaURL, bytes.NewReader(createSchemaJSON)); err != nil {
		return nil, fmt.Errorf("load create schema: %w", err)
	}
	return c.Compile(createSchemaURL)
})

// CreateInput is the body of a create request.
type CreateInput struct {
	Text string `json:"text"`
}

// DecodeCreateInput reads a create request body and validates it against the
// create schema. Read errors (including body size limits) are returned
// unwrapped so callers can inspect them; shape problems wrap ErrInvalidPayload.
func DecodeCreateInput(r io.Reader) (CreateInput, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return CreateInput{}, err
	}

	schema, err := createSchema()
	if err != nil {
		return CreateInput{}, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return CreateInput{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := schema.Validate(doc); err != nil {
		return CreateInput{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var input CreateInput
	if err := json.Unmarshal(body, &input); err != nil {
		return CreateInput{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return input, nil
}

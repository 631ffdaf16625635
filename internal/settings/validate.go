package settings

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/settings.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// MalformedError reports a settings file that is not a JSON object.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("settings file %s is not a valid JSON object: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// IsMalformed reports whether err is or wraps a *MalformedError.
func IsMalformed(err error) bool {
	var me *MalformedError
	return errors.As(err, &me)
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("settings.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("settings.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validate checks that data is well-formed JSON matching the settings schema.
func validate(data []byte) error {
	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating: %w", err)
	}
	return errors.New(strings.Join(leafMessages(ve), "; "))
}

// leafMessages walks the validation error tree and returns the messages of
// its leaves, prefixed with their instance location.
func leafMessages(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		if len(ve.InstanceLocation) > 0 {
			msg = "/" + strings.Join(ve.InstanceLocation, "/") + ": " + msg
		}
		return []string{msg}
	}

	var out []string
	for _, cause := range ve.Causes {
		out = append(out, leafMessages(cause)...)
	}
	return out
}

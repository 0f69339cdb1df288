package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// recordSchema holds the compiled #Configuration definition. CUE values are
// not safe for concurrent evaluation, so every use holds mu.
var recordSchema struct {
	once   sync.Once
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
	err    error
}

func loadSchema() error {
	s := &recordSchema
	s.once.Do(func() {
		s.ctx = cuecontext.New()
		v := s.ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			s.err = fmt.Errorf("compile record schema: %w", err)
			return
		}
		s.schema = v.LookupPath(cue.ParsePath("#Configuration"))
		if err := s.schema.Err(); err != nil {
			s.err = fmt.Errorf("lookup #Configuration: %w", err)
		}
	})
	return s.err
}

// ValidateRecordJSON checks a JSON-encoded record against the embedded
// schema. It reports the first violation as a *SchemaError.
func ValidateRecordJSON(data []byte) error {
	if err := loadSchema(); err != nil {
		return err
	}
	s := &recordSchema
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.ctx.CompileBytes(data, cue.Filename("record.json"))
	if err := v.Err(); err != nil {
		return &SchemaError{Message: fmt.Sprintf("record is not valid JSON: %v", err)}
	}
	if err := s.schema.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError converts the first CUE error into a SchemaError.
func schemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &SchemaError{Message: err.Error()}
	}
	first := errs[0]
	format, args := first.Msg()
	path := first.Path()
	if len(path) > 0 && path[0] == "#Configuration" {
		path = path[1:]
	}
	return &SchemaError{
		Path:    strings.Join(path, "."),
		Message: fmt.Sprintf(format, args...),
	}
}

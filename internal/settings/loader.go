package settings

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/anbanpillay/ASRI-PyROPS/internal/config"
)

// ErrCodeInvalid is the error code of every settings failure.
const ErrCodeInvalid = "SETTINGS_INVALID"

// EnvPrefix prefixes the environment variables that override settings.
const EnvPrefix = "PYROPS_"

// envKeys maps the honoured environment variables to settings keys. Other
// PYROPS_ variables are ignored.
var envKeys = map[string]string{
	EnvPrefix + "INPUT_DIR":  "input_dir",
	EnvPrefix + "OUTPUT_DIR": "output_dir",
}

// Error reports settings that could not be loaded or are invalid.
type Error struct {
	// Key is the settings key at fault, when known.
	Key     string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = e.Key + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrCodeInvalid, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrCodeInvalid, msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// IsError reports whether err is or wraps a settings *Error.
func IsError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// Load builds settings from the defaults, the YAML file at path (skipped
// when path is empty) and the environment, in increasing precedence.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "yaml"), nil); err != nil {
		return nil, &Error{Message: "load defaults", Err: err}
	}
	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, &Error{Message: "apply " + path, Err: err}
		}
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return envKeys[key], value
		},
	}), nil); err != nil {
		return nil, &Error{Message: "load environment", Err: err}
	}

	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			ErrorUnused:      true,
			Result:           &s,
			TagName:          "yaml",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, &Error{Message: "decode settings", Err: err}
	}

	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: "read settings file", Err: err}
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &Error{Message: "parse " + path, Err: err}
	}
	return m, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field rules and the vehicle constants.
func Validate(s *Settings) error {
	if s == nil {
		return &Error{Message: "settings cannot be nil"}
	}
	if err := validate.Struct(s); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			fe := ves[0]
			_, key, _ := strings.Cut(fe.Namespace(), ".")
			return &Error{Key: key, Message: fmt.Sprintf("value %v violates %s", fe.Value(), fe.Tag())}
		}
		return &Error{Message: "validate settings", Err: err}
	}
	if err := config.ValidateStatic(s.Vehicle); err != nil {
		return &Error{Key: "vehicle", Message: "invalid vehicle constants", Err: err}
	}
	return nil
}

// rawMap adapts a decoded YAML document to koanf.Provider.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}

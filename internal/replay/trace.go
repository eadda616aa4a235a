package replay

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"softkey/internal/event"
)

// TraceVersion is the only trace format version understood.
const TraceVersion = 1

// ErrInvalidTrace wraps every decoding or schema failure.
var ErrInvalidTrace = errors.New("invalid keystroke trace")

//go:embed trace.schema.json
var traceSchemaJSON string

const traceSchemaURL = "https://softkey.local/schema/keystroke-trace-v1.schema.json"

var traceSchema = jsonschema.MustCompileString(traceSchemaURL, traceSchemaJSON)

// Trace is a recorded sequence of keystrokes together with the shift
// update requests each pipeline stage made for them.
type Trace struct {
	Version    int         `json:"version"`
	Name       string      `json:"name,omitempty"`
	Keystrokes []Keystroke `json:"keystrokes"`
}

// Keystroke is the recorded initial conditions of one key press.
// X and Y use the keyboard view's raw encoding; nil means not a touch.
type Keystroke struct {
	Code       Code             `json:"code"`
	X          *int32           `json:"x,omitempty"`
	Y          *int32           `json:"y,omitempty"`
	Timestamp  int64            `json:"timestamp"`
	SpaceState event.SpaceState `json:"space_state"`
	ShiftState event.ShiftState `json:"shift_state"`
	Stages     []StageRecord    `json:"stages,omitempty"`
}

// StageRecord lists the shift update levels one stage asked for, in order.
type StageRecord struct {
	Name    string              `json:"name"`
	Require []event.ShiftUpdate `json:"require,omitempty"`
}

// Code is a key code that decodes from either a JSON number or any string
// event.ParseKeyCode accepts.
type Code event.KeyCode

// KeyCode returns the underlying key code.
func (c Code) KeyCode() event.KeyCode { return event.KeyCode(c) }

// MarshalJSON writes control codes by name and everything else as a number.
func (c Code) MarshalJSON() ([]byte, error) {
	kc := event.KeyCode(c)
	if !kc.IsCodePoint() {
		if name := kc.String(); !strings.HasPrefix(name, "KeyCode(") {
			return json.Marshal(name)
		}
	}
	return []byte(strconv.FormatInt(int64(c), 10)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(data []byte) error {
	var n int32
	if err := json.Unmarshal(data, &n); err == nil {
		*c = Code(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("key code must be a number or string: %w", err)
	}
	kc, err := event.ParseKeyCode(s)
	if err != nil {
		return err
	}
	*c = Code(kc)
	return nil
}

// Coordinates returns the keystroke's position as optional coordinates.
func (k Keystroke) Coordinates() (x, y event.Coordinate) {
	return optionalCoordinate(k.X), optionalCoordinate(k.Y)
}

func optionalCoordinate(raw *int32) event.Coordinate {
	if raw == nil {
		return event.NotATouch(event.CoordinateNotApplicable)
	}
	return event.CoordinateFromRaw(*raw)
}

// ParseTrace decodes and validates a trace. format is "json" or "yaml";
// an empty format sniffs the first non-space byte.
func ParseTrace(data []byte, format string) (*Trace, error) {
	if format == "" {
		format = sniffFormat(data)
	}

	var doc any
	switch format {
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: decode JSON: %v", ErrInvalidTrace, err)
		}
	case "yaml":
		var err error
		if doc, data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("%w: decode YAML: %v", ErrInvalidTrace, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidTrace, format)
	}

	if err := traceSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}

	var trace Trace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}
	return &trace, nil
}

// LoadTrace reads a trace file; the format follows the file extension.
func LoadTrace(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	format := ""
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = "json"
	case ".yaml", ".yml":
		format = "yaml"
	}

	trace, err := ParseTrace(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trace, nil
}

func sniffFormat(data []byte) string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return "json"
	}
	return "yaml"
}

// yamlToJSON converts a YAML document into the generic form the schema
// validator expects, plus its JSON encoding.
func yamlToJSON(data []byte) (any, []byte, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	encoded, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(encoded))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, err
	}
	return doc, encoded, nil
}

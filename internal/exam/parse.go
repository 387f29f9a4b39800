package exam

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// MalformedInput means the text is not valid structured data.
	MalformedInput ErrorKind = iota + 1
	// MissingRequiredField means the top-level title or questions are missing.
	MissingRequiredField
	// InvalidQuestion means one question entry has the wrong shape.
	InvalidQuestion
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case MalformedInput:
		return "MalformedInput"
	case MissingRequiredField:
		return "MissingRequiredField"
	case InvalidQuestion:
		return "InvalidQuestion"
	default:
		return "Unknown"
	}
}

// Sentinels matched by errors.Is against a *ParseError of the same kind.
var (
	ErrMalformedInput       = errors.New("malformed input")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidQuestion      = errors.New("invalid question")
)

// ParseError describes why raw exam text was rejected.
type ParseError struct {
	Kind   ErrorKind
	Format string
	// Index is the offending question position for InvalidQuestion, otherwise -1.
	Index int
	Field string
	Err   error
}

// Error returns the user-facing message.
func (err *ParseError) Error() string {
	switch err.Kind {
	case MalformedInput:
		if err.Err != nil {
			return fmt.Sprintf("invalid %s format: %v", err.Format, err.Err)
		}
		return fmt.Sprintf("invalid %s format", err.Format)
	case MissingRequiredField:
		return fmt.Sprintf("invalid exam format: missing title or questions (%s)", err.Field)
	case InvalidQuestion:
		return fmt.Sprintf("invalid question format at index %d: %s", err.Index, err.Field)
	default:
		return "invalid exam"
	}
}

// Unwrap exposes the underlying decoder error, if any.
func (err *ParseError) Unwrap() error {
	return err.Err
}

// Is matches the kind sentinels.
func (err *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformedInput:
		return err.Kind == MalformedInput
	case ErrMissingRequiredField:
		return err.Kind == MissingRequiredField
	case ErrInvalidQuestion:
		return err.Kind == InvalidQuestion
	}
	return false
}

const (
	formatJSON = "JSON"
	formatYAML = "YAML"
)

// Parse turns JSON text into an Exam. Only the shape is checked: correct
// indices, type names and id uniqueness are left to Validate.
func Parse(data []byte) (Exam, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return Exam{}, malformed(formatJSON, err)
	}
	var extra any
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Exam{}, malformed(formatJSON, errors.New("multiple documents are not supported"))
		}
		return Exam{}, malformed(formatJSON, err)
	}
	return fromDocument(doc)
}

// ParseYAML turns YAML text of the same shape into an Exam.
func ParseYAML(data []byte) (Exam, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return Exam{}, malformed(formatYAML, errors.New("empty document"))
		}
		return Exam{}, malformed(formatYAML, err)
	}
	var extra any
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return Exam{}, malformed(formatYAML, errors.New("multiple documents are not supported"))
		}
		return Exam{}, malformed(formatYAML, err)
	}
	return fromDocument(doc)
}

func malformed(format string, err error) *ParseError {
	return &ParseError{Kind: MalformedInput, Format: format, Index: -1, Err: err}
}

func missing(field string) *ParseError {
	return &ParseError{Kind: MissingRequiredField, Index: -1, Field: field}
}

func invalidQuestion(index int, field string) *ParseError {
	return &ParseError{Kind: InvalidQuestion, Index: index, Field: field}
}

func fromDocument(doc any) (Exam, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return Exam{}, missing("document is not an object")
	}
	title, ok := root["title"].(string)
	if !ok || title == "" {
		return Exam{}, missing("title must be a non-empty string")
	}
	rawQuestions, ok := root["questions"].([]any)
	if !ok {
		return Exam{}, missing("questions must be a list")
	}

	out := Exam{Title: title, Questions: make([]Question, 0, len(rawQuestions))}
	for i, raw := range rawQuestions {
		question, err := questionFromDocument(i, raw)
		if err != nil {
			return Exam{}, err
		}
		out.Questions = append(out.Questions, question)
	}
	return out, nil
}

func questionFromDocument(index int, raw any) (Question, error) {
	fields, ok := raw.(map[string]any)
	if !ok {
		return Question{}, invalidQuestion(index, "entry is not an object")
	}
	id, ok := toInt(fields["id"])
	if !ok {
		return Question{}, invalidQuestion(index, "id must be an integer")
	}
	kind, ok := fields["type"].(string)
	if !ok || kind == "" {
		return Question{}, invalidQuestion(index, "type must be a non-empty string")
	}
	prompt, ok := fields["question"].(string)
	if !ok || prompt == "" {
		return Question{}, invalidQuestion(index, "question must be a non-empty string")
	}
	rawOptions, ok := fields["options"].([]any)
	if !ok {
		return Question{}, invalidQuestion(index, "options must be a list")
	}
	options := make([]string, 0, len(rawOptions))
	for optionIndex, rawOption := range rawOptions {
		option, ok := rawOption.(string)
		if !ok {
			return Question{}, invalidQuestion(index, fmt.Sprintf("options[%d] must be a string", optionIndex))
		}
		options = append(options, option)
	}
	rawCorrect, ok := fields["correct"].([]any)
	if !ok {
		return Question{}, invalidQuestion(index, "correct must be a list")
	}
	correct := make([]int, 0, len(rawCorrect))
	for correctIndex, rawValue := range rawCorrect {
		value, ok := toInt(rawValue)
		if !ok {
			return Question{}, invalidQuestion(index, fmt.Sprintf("correct[%d] must be an integer", correctIndex))
		}
		correct = append(correct, value)
	}

	question := Question{
		ID:      id,
		Type:    QuestionType(kind),
		Prompt:  prompt,
		Options: options,
		Correct: correct,
	}
	if rawExplanation, present := fields["explanation"]; present && rawExplanation != nil {
		explanation, ok := rawExplanation.(string)
		if !ok {
			return Question{}, invalidQuestion(index, "explanation must be a string")
		}
		question.Explanation = &explanation
	}
	return question, nil
}

// toInt accepts the integer encodings produced by the JSON and YAML decoders.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		parsed, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return 0, false
			}
			return floatToInt(f)
		}
		return int(parsed), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		return floatToInt(v)
	default:
		return 0, false
	}
}

func floatToInt(value float64) (int, bool) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value != math.Trunc(value) {
		return 0, false
	}
	if value > math.MaxInt || value < math.MinInt {
		return 0, false
	}
	return int(value), true
}

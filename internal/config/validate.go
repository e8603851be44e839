package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ValidationError represents a configuration file error with position context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateJSONSyntax checks that the file holds a single valid JSON object.
// A missing or empty file is valid.
func ValidateJSONSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		if os.IsPermission(err) {
			return &ValidationError{FilePath: filePath, Message: "permission denied"}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return ValidateJSONSyntaxFromBytes(data, filePath)
}

// ValidateJSONSyntaxFromBytes is ValidateJSONSyntax for in-memory content
func ValidateJSONSyntaxFromBytes(data []byte, filePath string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var obj map[string]interface{}
	err := json.Unmarshal(data, &obj)
	if err == nil {
		return nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, column := lineColumn(data, syntaxErr.Offset)
		return &ValidationError{FilePath: filePath, Line: line, Column: column, Message: syntaxErr.Error()}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{FilePath: filePath, Message: "top-level value must be a JSON object"}
	}

	return &ValidationError{FilePath: filePath, Message: err.Error()}
}

// lineColumn converts a byte offset into 1-based line and column numbers
func lineColumn(data []byte, offset int64) (line, column int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	line = 1
	column = 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

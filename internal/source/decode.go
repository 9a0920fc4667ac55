package source

import (
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeYAML reads one YAML document describing a tree.
func DecodeYAML(r io.Reader) (Node, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Node{}, fmt.Errorf("empty YAML document")
		}
		return Node{}, fmt.Errorf("failed to decode YAML: %w", err)
	}
	return FromValue(doc), nil
}

// DecodeJSON reads one JSON document describing a tree.
func DecodeJSON(r io.Reader) (Node, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Node{}, fmt.Errorf("empty JSON document")
		}
		return Node{}, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return FromValue(doc), nil
}

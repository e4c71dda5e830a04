package repair

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errNotCmdRecord = errors.New("line does not decode as a single cmd mapping")
	errNotListItem  = errors.New("line does not decode as a single list item")
	errPlainColon   = errors.New("unquoted value contains ':'")
	errPlainBool    = errors.New("unquoted value is a YAML 1.1 boolean")
)

// legacyBools are the plain words YAML 1.1 readers load as booleans while yaml.v3
// resolves them as strings.
var legacyBools = map[string]bool{
	"yes": true, "Yes": true, "YES": true,
	"no": true, "No": true, "NO": true,
	"on": true, "On": true, "ON": true,
	"off": true, "Off": true, "OFF": true,
}

// cmdScalar decodes a cmd fragment and returns the node holding the command.
func cmdScalar(fragment string) (*yaml.Node, error) {
	item, err := singleItem(fragment, errNotCmdRecord)
	if err != nil {
		return nil, err
	}
	if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
		return nil, errNotCmdRecord
	}
	if key := item.Content[0]; key.Kind != yaml.ScalarNode || key.Value != "cmd" {
		return nil, errNotCmdRecord
	}
	return item.Content[1], nil
}

// pathScalar decodes a "- value" list item fragment.
func pathScalar(fragment string) (*yaml.Node, error) {
	return singleItem(fragment, errNotListItem)
}

func singleItem(fragment string, shapeErr error) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fragment), &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, shapeErr
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode || len(seq.Content) != 1 {
		return nil, shapeErr
	}
	return seq.Content[0], nil
}

// checkScalar verifies node holds a string every YAML reader agrees on. Quoted and
// block scalars are accepted as they are. Plain scalars must not contain ':' or be a
// YAML 1.1 boolean word, and a single-line plain scalar must read back as raw. A
// multi-line plain scalar is folded by the reader, so only its decoded value is checked.
func checkScalar(node *yaml.Node, raw string, multiline bool) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("value is a %s, not a string", kindName(node.Kind))
	}
	if tag := node.ShortTag(); tag != "!!str" {
		return fmt.Errorf("value resolves to %s, not a string", tag)
	}
	if !isPlain(node) {
		return nil
	}
	if !multiline && node.Value != raw {
		return fmt.Errorf("unquoted value reads back as %q", node.Value)
	}
	if strings.Contains(node.Value, ":") {
		return errPlainColon
	}
	if legacyBools[node.Value] {
		return errPlainBool
	}
	return nil
}

func isPlain(node *yaml.Node) bool {
	return node.Style&^yaml.TaggedStyle == 0
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return "scalar"
	}
}

// SPDX-License-Identifier: MPL-2.0

package progfile

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

func decodeYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	node := &root
	if node.Kind == 0 {
		return &Document{}, nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return &Document{}, nil
		}
		node = node.Content[0]
	}
	node = derefYAML(node)

	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return &Document{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &InvalidValueError{Path: "", Reason: "top level must be a mapping"}
	}
	return yamlMapping(node, "")
}

func yamlMapping(node *yaml.Node, path string) (*Document, error) {
	doc := &Document{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := derefYAML(node.Content[i]).Value
		val, err := yamlValue(derefYAML(node.Content[i+1]), joinPath(path, key))
		if err != nil {
			return nil, err
		}
		doc.Append(key, val)
	}
	return doc, nil
}

func yamlValue(node *yaml.Node, path string) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Value{}, &InvalidValueError{Path: path, Reason: "value is empty"}
		}
		return Scalar(node.Value), nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for i, item := range node.Content {
			item = derefYAML(item)
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				return Value{}, &InvalidValueError{Path: fmt.Sprintf("%s[%d]", path, i), Reason: "list items must be strings"}
			}
			items = append(items, item.Value)
		}
		return List(items...), nil
	case yaml.MappingNode:
		sub, err := yamlMapping(node, path)
		if err != nil {
			return Value{}, err
		}
		return Map(sub), nil
	default:
		return Value{}, &InvalidValueError{Path: path, Reason: "unsupported YAML node"}
	}
}

// derefYAML follows YAML aliases (*anchor) to the node they refer to.
func derefYAML(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func encodeYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(yamlMappingNode(doc)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlMappingNode(doc *Document) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range doc.Entries {
		node.Content = append(node.Content, yamlString(e.Key), yamlValueNode(e.Value))
	}
	return node
}

func yamlValueNode(v Value) *yaml.Node {
	switch v.Kind {
	case ListValue:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.List {
			seq.Content = append(seq.Content, yamlString(item))
		}
		return seq
	case MapValue:
		return yamlMappingNode(v.Map)
	default:
		return yamlString(v.Scalar)
	}
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

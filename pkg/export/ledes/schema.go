package ledes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// schemaIndex is the element vocabulary extracted from an XSD. The
// check performed against it is structural: every element appearing in
// a produced document must be declared by the schema. Content-model
// and type constraints are not enforced.
type schemaIndex struct {
	declared map[string]struct{}
}

func parseSchema(xsd []byte) (*schemaIndex, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xsd); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "schema" {
		return nil, fmt.Errorf("schema document has no schema root element")
	}

	idx := &schemaIndex{declared: make(map[string]struct{})}
	collectDeclaredElements(root, idx.declared)
	if len(idx.declared) == 0 {
		return nil, fmt.Errorf("schema declares no elements")
	}
	return idx, nil
}

func collectDeclaredElements(el *etree.Element, declared map[string]struct{}) {
	if el.Tag == "element" {
		if name := el.SelectAttrValue("name", ""); name != "" {
			declared[name] = struct{}{}
		}
	}
	for _, child := range el.ChildElements() {
		collectDeclaredElements(child, declared)
	}
}

func (s *schemaIndex) validate(doc *etree.Document) error {
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("document has no root element")
	}

	seen := make(map[string]struct{})
	var undeclared []string
	var walk func(*etree.Element)
	walk = func(el *etree.Element) {
		if _, ok := s.declared[el.Tag]; !ok {
			if _, dup := seen[el.Tag]; !dup {
				seen[el.Tag] = struct{}{}
				undeclared = append(undeclared, el.Tag)
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)

	if len(undeclared) > 0 {
		sort.Strings(undeclared)
		return fmt.Errorf("elements not declared by schema: %s", strings.Join(undeclared, ", "))
	}
	return nil
}

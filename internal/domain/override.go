package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// OverrideMarker introduces an override block in a type's documentation.
const OverrideMarker = "gentest:"

// ContractSuffix may be appended to contract names in a has list.
const ContractSuffix = "Tests"

var overrideKeys = map[string]struct{}{"has": {}, "excluding": {}, "skipping": {}}

var plainTags = map[string]struct{}{
	"": {}, "!!str": {}, "!!seq": {}, "!!map": {}, "!!null": {}, "!!int": {}, "!!float": {}, "!!bool": {},
}

// ParseDocOverride extracts the first override block from a doc comment.
// ok is false when the doc carries none.
func ParseDocOverride(doc string) (*m.Override, bool, error) {
	block, found := overrideBlock(doc)
	if !found {
		return nil, false, nil
	}

	o, err := ParseOverride([]byte(block))
	if err != nil {
		return nil, true, err
	}

	return o, true, nil
}

// ParseOverride decodes has/excluding/skipping from YAML restricted to
// mappings, sequences and plain scalars.
func ParseOverride(data []byte) (*m.Override, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	o := &m.Override{}
	if root.Kind == 0 || (root.Kind == yaml.DocumentNode && len(root.Content) == 0) {
		return o, nil
	}

	if err := checkNode(&root); err != nil {
		return nil, err
	}

	body := &root
	if body.Kind == yaml.DocumentNode {
		body = body.Content[0]
	}

	if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
		return o, nil
	}

	if body.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: expected a mapping at line %d", ErrInvalidOverride, body.Line)
	}

	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i], body.Content[i+1]
		if _, known := overrideKeys[key.Value]; !known {
			return nil, fmt.Errorf("%w: unknown key %q at line %d", ErrInvalidOverride, key.Value, key.Line)
		}

		if value.Kind == yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s must be a list at line %d", ErrInvalidOverride, key.Value, value.Line)
		}

		if value.Kind == yaml.SequenceNode {
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("%w: %s entries must be names at line %d", ErrInvalidOverride, key.Value, item.Line)
				}
			}
		}
	}

	if err := body.Decode(o); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOverride, err)
	}

	return o, nil
}

func checkNode(n *yaml.Node) error {
	if n.Kind == yaml.AliasNode || n.Anchor != "" {
		return fmt.Errorf("%w: anchors and aliases are not allowed (line %d)", ErrInvalidOverride, n.Line)
	}

	if _, ok := plainTags[n.Tag]; !ok {
		return fmt.Errorf("%w: tag %s is not allowed (line %d)", ErrInvalidOverride, n.Tag, n.Line)
	}

	for _, child := range n.Content {
		if err := checkNode(child); err != nil {
			return err
		}
	}

	return nil
}

// overrideBlock returns the dedented lines following the first marker line,
// up to the first line indented no deeper than the marker.
func overrideBlock(doc string) (string, bool) {
	lines := strings.Split(doc, "\n")

	for i, line := range lines {
		if strings.TrimSpace(line) != OverrideMarker {
			continue
		}

		indent := leading(line)

		var block []string

		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" {
				block = append(block, "")
				continue
			}

			if len(leading(next)) <= len(indent) {
				break
			}

			block = append(block, next)
		}

		return dedent(block), true
	}

	return "", false
}

func leading(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func dedent(lines []string) string {
	prefix := ""
	first := true

	for _, line := range lines {
		if line == "" {
			continue
		}

		ws := leading(line)
		if first {
			prefix, first = ws, false
			continue
		}

		for !strings.HasPrefix(ws, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(out, "\n")
}

// ApplyOverride assigns a mode to every check. A skipping fragment wins over
// an excluding fragment matching the same check.
func ApplyOverride(checks []m.Check, o *m.Override) []m.PlannedCheck {
	planned := make([]m.PlannedCheck, len(checks))

	for i, check := range checks {
		planned[i] = m.PlannedCheck{Check: check, Mode: m.ModeActive}
		if o == nil {
			continue
		}

		id := check.ID()

		if fragment, ok := matchFragment(id, o.Skipping); ok {
			planned[i].Mode = m.ModeSkipped
			planned[i].Matched = fragment

			continue
		}

		if fragment, ok := matchFragment(id, o.Excluding); ok {
			planned[i].Mode = m.ModeExcluded
			planned[i].Matched = fragment
		}
	}

	return planned
}

func matchFragment(id string, fragments []string) (string, bool) {
	for _, fragment := range fragments {
		if fragment != "" && strings.Contains(id, fragment) {
			return fragment, true
		}
	}

	return "", false
}

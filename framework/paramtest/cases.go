package paramtest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Case is one externally defined parametric case: an optional label plus
// ordered parameter values. Tables of cases let data-driven parameter sweeps
// live in files next to the fixtures they describe.
type Case struct {
	Label  string
	Params Params
}

// LoadCasesFile reads a YAML file containing a list of cases. See ParseCases
// for the expected format.
func LoadCasesFile(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := ParseCases(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	return cases, nil
}

// ParseCases parses a YAML list of cases of the form:
//
//	cases.yaml:
//	  - label: small detector
//	    params:
//	      pixels: 128
//	      exposure: 0.5
//	  - label: large detector
//	    params: {pixels: 4096, exposure: 2}
//
// Parameter order within each case follows the document order of the params
// mapping, so descriptions come out the way the file reads.
func ParseCases(data []byte) ([]Case, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("expected a list of cases at line %d", seq.Line)
	}
	ret := make([]Case, 0, len(seq.Content))
	for _, item := range seq.Content {
		c, err := parseCase(item)
		if err != nil {
			return nil, err
		}
		ret = append(ret, c)
	}
	return ret, nil
}

func parseCase(node *yaml.Node) (Case, error) {
	if node.Kind != yaml.MappingNode {
		return Case{}, fmt.Errorf("expected a case mapping at line %d", node.Line)
	}
	var c Case
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "label":
			if err := value.Decode(&c.Label); err != nil {
				return Case{}, err
			}
		case "params":
			params, err := parseParams(value)
			if err != nil {
				return Case{}, err
			}
			c.Params = params
		default:
			return Case{}, fmt.Errorf("unknown case field %q at line %d", key.Value, key.Line)
		}
	}
	return c, nil
}

func parseParams(node *yaml.Node) (Params, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a params mapping at line %d", node.Line)
	}
	ret := make(Params, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value interface{}
		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, err
		}
		ret = append(ret, Param{Key: node.Content[i].Value, Value: value})
	}
	return ret, nil
}

package canvas

import (
	"gopkg.in/yaml.v3"
)

// ExportYAML renders the graph as YAML for download.
func ExportYAML(g *Graph) (string, error) {
	b, err := yaml.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

package genetics

import (
	"gopkg.in/yaml.v3"

	"github.com/fenwick-labs/neatcore/network"
)

// yamlGenome is the on-disk shape of a Genome: a self-describing record
// that preserves node and link order exactly (spec §6 "Genome
// serialization"), using YAML rather than the teacher's bespoke
// `genomestart`/`genomeend` line format.
type yamlGenome struct {
	ID    int        `yaml:"id"`
	Nodes []yamlNode `yaml:"nodes"`
	Links []yamlLink `yaml:"links"`
}

type yamlNode struct {
	ID   int    `yaml:"id"`
	Kind string `yaml:"kind"`
}

type yamlLink struct {
	FromID      int     `yaml:"from"`
	ToID        int     `yaml:"to"`
	Weight      float64 `yaml:"weight"`
	Enabled     bool    `yaml:"enabled"`
	IsRecurrent bool    `yaml:"recurrent"`
	Innovation  int64   `yaml:"innovation"`
}

func kindName(k network.NodeKind) string {
	switch k {
	case network.Input:
		return "input"
	case network.Output:
		return "output"
	case network.Bias:
		return "bias"
	default:
		return "hidden"
	}
}

func kindFromName(name string) network.NodeKind {
	switch name {
	case "input":
		return network.Input
	case "output":
		return network.Output
	case "bias":
		return network.Bias
	default:
		return network.Hidden
	}
}

// MarshalYAML encodes the genome as a self-describing YAML record,
// preserving node and link order exactly as stored.
func (g *Genome) MarshalYAML() (interface{}, error) {
	doc := yamlGenome{ID: g.ID}
	for _, n := range g.Nodes {
		doc.Nodes = append(doc.Nodes, yamlNode{ID: n.ID, Kind: kindName(n.Kind)})
	}
	for _, l := range g.Links {
		doc.Links = append(doc.Links, yamlLink{
			FromID:      l.FromID,
			ToID:        l.ToID,
			Weight:      l.Weight,
			Enabled:     l.Enabled,
			IsRecurrent: l.IsRecurrent,
			Innovation:  l.Innovation,
		})
	}
	return doc, nil
}

// UnmarshalYAML decodes a genome previously written by MarshalYAML.
func (g *Genome) UnmarshalYAML(value *yaml.Node) error {
	var doc yamlGenome
	if err := value.Decode(&doc); err != nil {
		return err
	}
	g.ID = doc.ID
	g.Nodes = make([]Node, len(doc.Nodes))
	for i, n := range doc.Nodes {
		g.Nodes[i] = Node{ID: n.ID, Kind: kindFromName(n.Kind)}
	}
	g.Links = make([]Link, len(doc.Links))
	for i, l := range doc.Links {
		g.Links[i] = Link{
			FromID:      l.FromID,
			ToID:        l.ToID,
			Weight:      l.Weight,
			Enabled:     l.Enabled,
			IsRecurrent: l.IsRecurrent,
			Innovation:  l.Innovation,
		}
	}
	return nil
}

package content

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"BitwoodRPG/internal/dialogue"
)

// YAML schema for NPC dialogue scripts. Conditions and effects are the
// dialogue package's tagged variants spelled out as flag lists, so a
// script can gate and mutate narrative state without any code.

type npcFile struct {
	Name   string     `yaml:"name"`
	Tag    string     `yaml:"tag"`
	Radius float64    `yaml:"radius"`
	Start  string     `yaml:"start"`
	Nodes  []nodeSpec `yaml:"nodes"`
}

type nodeSpec struct {
	ID      string       `yaml:"id"`
	Text    string       `yaml:"text"`
	OnEnter *effectSpec  `yaml:"on_enter"`
	Choices []choiceSpec `yaml:"choices"`
}

type choiceSpec struct {
	Label string         `yaml:"label"`
	Next  string         `yaml:"next"`
	If    *conditionSpec `yaml:"if"`
	Do    *effectSpec    `yaml:"do"`
}

type conditionSpec struct {
	AllSet  []string `yaml:"all_set"`
	NoneSet []string `yaml:"none_set"`
}

type effectSpec struct {
	Set   []string `yaml:"set"`
	Clear []string `yaml:"clear"`
}

// ParseNPC decodes one NPC script and builds its validated dialogue
// graph. Reference errors inside the script surface here, at load time.
func ParseNPC(data []byte) (NPCDef, error) {
	var file npcFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return NPCDef{}, fmt.Errorf("decode npc script: %w", err)
	}
	if file.Name == "" {
		return NPCDef{}, fmt.Errorf("npc script has no name")
	}
	if file.Tag == "" {
		return NPCDef{}, fmt.Errorf("npc script %q has no spawn tag", file.Name)
	}

	nodes := make([]*dialogue.Node, 0, len(file.Nodes))
	for _, spec := range file.Nodes {
		node := &dialogue.Node{
			ID:      dialogue.NodeID(spec.ID),
			Text:    spec.Text,
			OnEnter: spec.OnEnter.effect(),
		}
		for _, c := range spec.Choices {
			node.Choices = append(node.Choices, dialogue.Choice{
				Label: c.Label,
				Next:  dialogue.NodeID(c.Next),
				If:    c.If.condition(),
				Do:    c.Do.effect(),
			})
		}
		nodes = append(nodes, node)
	}

	graph, err := dialogue.NewGraph(dialogue.NodeID(file.Start), nodes)
	if err != nil {
		return NPCDef{}, fmt.Errorf("npc script %q: %w", file.Name, err)
	}
	return NPCDef{
		Tag:    file.Tag,
		Name:   file.Name,
		Graph:  graph,
		Radius: file.Radius,
	}, nil
}

func (c *conditionSpec) condition() *dialogue.Condition {
	if c == nil {
		return nil
	}
	return &dialogue.Condition{AllSet: c.AllSet, NoneSet: c.NoneSet}
}

func (e *effectSpec) effect() *dialogue.Effect {
	if e == nil {
		return nil
	}
	return &dialogue.Effect{Set: e.Set, Clear: e.Clear}
}

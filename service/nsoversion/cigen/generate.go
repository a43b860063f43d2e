package cigen

import (
	"bytes"
	"fmt"

	"github.com/viant/callpoint/service/nsoversion"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultJob is the archetype job every generated job extends
	DefaultJob = "build"
	// VersionVariable carries the NSO version into the job
	VersionVariable = "NSO_VERSION"
)

// Generate renders one CI job per version:
//
//	build-5.4.1:
//	  extends: .build
//	  variables:
//	    NSO_VERSION: "5.4.1"
func Generate(job string, versions []nsoversion.Version) ([]byte, error) {
	if job == "" {
		job = DefaultJob
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, version := range versions {
		variables := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			scalar(VersionVariable, 0),
			scalar(version.Version, yaml.DoubleQuotedStyle),
		}}
		body := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			scalar("extends", 0), scalar("."+job, 0),
			scalar("variables", 0), variables,
		}}
		root.Content = append(root.Content, scalar(fmt.Sprintf("%s-%s", job, version.Version), 0), body)
	}
	if len(root.Content) == 0 {
		return []byte{}, nil
	}
	buf := new(bytes.Buffer)
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(root); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scalar(value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: style}
}

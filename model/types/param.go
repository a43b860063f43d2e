package types

import (
	"fmt"
	"strings"
)

// Param is a namespace qualified tagged value exchanged with the host.
type Param struct {
	Prefix string      `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Tag    string      `json:"tag" yaml:"tag"`
	Value  interface{} `json:"value,omitempty" yaml:"value,omitempty"`
}

// NewParam creates a tagged value.
func NewParam(prefix, tag string, value interface{}) Param {
	return Param{Prefix: prefix, Tag: tag, Value: value}
}

// QualifiedTag returns prefix:tag, or tag when the prefix is empty.
func (p Param) QualifiedTag() string {
	if p.Prefix == "" {
		return p.Tag
	}
	return p.Prefix + ":" + p.Tag
}

func (p Param) String() string {
	return fmt.Sprintf("%s=%v", p.QualifiedTag(), p.Value)
}

// Params is an ordered parameter list
type Params []Param

// Lookup returns the first parameter with matching tag
func (p Params) Lookup(tag string) *Param {
	for i := range p {
		if p[i].Tag == tag {
			return &p[i]
		}
	}
	return nil
}

// KeyPath identifies a node in the configuration tree, outermost element first,
// e.g. {"devices", "device", "{ce0}"}.
type KeyPath []string

// ParseKeyPath parses /a/b{k}/c style paths.
func ParseKeyPath(path string) KeyPath {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return nil
	}
	var ret KeyPath
	for _, elem := range strings.Split(path, "/") {
		if elem == "" {
			continue
		}
		idx := strings.Index(elem, "{")
		if idx == -1 {
			ret = append(ret, elem)
			continue
		}
		if idx > 0 {
			ret = append(ret, elem[:idx])
		}
		ret = append(ret, elem[idx:])
	}
	return ret
}

// Append returns a new key path with elements appended
func (k KeyPath) Append(elems ...string) KeyPath {
	ret := make(KeyPath, 0, len(k)+len(elems))
	ret = append(ret, k...)
	return append(ret, elems...)
}

func (k KeyPath) String() string {
	var b strings.Builder
	for _, elem := range k {
		if strings.HasPrefix(elem, "{") && b.Len() > 0 {
			b.WriteString(elem)
			continue
		}
		b.WriteByte('/')
		b.WriteString(elem)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

package nsoversion

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Type classifies a release
type Type string

const (
	TypeNormal  Type = "normal"
	TypeSpecial Type = "special"
	TypeNightly Type = "nightly"
)

// nightly suffix: _YYMMDD.HHMMSSmmm.<commit>
var nightlyExpr = regexp.MustCompile(`^_(\d{6})\.(\d{9})\.[0-9a-f]+$`)

// Version is a parsed NSO release identifier such as 5.4.2 or 5.4_ps
type Version struct {
	Version string `json:"version"`
	Tuple   []int  `json:"tuple"`
	Extra   string `json:"extra,omitempty"`
	Type    Type   `json:"type"`
}

func (v Version) String() string {
	return v.Version
}

// Major returns the first tuple element
func (v Version) Major() int {
	if len(v.Tuple) == 0 {
		return 0
	}
	return v.Tuple[0]
}

// Train returns the major.minor train
func (v Version) Train() string {
	if len(v.Tuple) < 2 {
		return fmt.Sprintf("%d", v.Major())
	}
	return fmt.Sprintf("%d.%d", v.Tuple[0], v.Tuple[1])
}

// Parse splits a version into numeric tuple and suffix
func Parse(version string) (Version, error) {
	ret := Version{Version: version, Type: TypeNormal}
	base := version
	if idx := strings.Index(version, "_"); idx != -1 {
		base, ret.Extra = version[:idx], version[idx:]
		ret.Type = TypeSpecial
	}
	for _, part := range strings.Split(base, ".") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return ret, fmt.Errorf("invalid version %q: %w", version, err)
		}
		ret.Tuple = append(ret.Tuple, n)
	}
	if matches := nightlyExpr.FindStringSubmatch(ret.Extra); matches != nil {
		ret.Type = TypeNightly
		for _, part := range matches[1:] {
			n, _ := strconv.Atoi(part)
			ret.Tuple = append(ret.Tuple, n)
		}
	}
	return ret, nil
}

// ParseAll parses and sorts versions
func ParseAll(versions []string) ([]Version, error) {
	ret := make([]Version, 0, len(versions))
	for _, v := range versions {
		parsed, err := Parse(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, parsed)
	}
	Sort(ret)
	return ret, nil
}

// Sort orders versions by version string
func Sort(versions []Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})
}

// Compare compares tuples element by element, a shorter prefix sorts first
func Compare(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Major keeps versions of the given major number
func Major(major int, versions []Version) []Version {
	var ret []Version
	for _, v := range versions {
		if v.Major() == major {
			ret = append(ret, v)
		}
	}
	return ret
}

// TipOfTrain keeps the latest version of every major.minor train, separately per release type.
func TipOfTrain(versions []Version) []Version {
	type train struct {
		name string
		kind Type
	}
	tips := map[train]Version{}
	for _, v := range versions {
		key := train{name: v.Train(), kind: v.Type}
		if tip, ok := tips[key]; !ok || Compare(tip.Tuple, v.Tuple) < 0 {
			tips[key] = v
		}
	}
	ret := make([]Version, 0, len(tips))
	for _, v := range tips {
		ret = append(ret, v)
	}
	Sort(ret)
	return ret
}

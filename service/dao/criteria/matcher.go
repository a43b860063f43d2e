package criteria

import (
	"strings"

	"github.com/viant/callpoint/service/dao"
)

// FilterByPrefix reports whether key satisfies every Prefix parameter; a
// []string value matches when any of its prefixes does.
func FilterByPrefix(key string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != dao.PrefixParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			if !strings.HasPrefix(key, actual) {
				return false
			}
		case []string:
			matched := false
			for _, prefix := range actual {
				if strings.HasPrefix(key, prefix) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
	}
	return true
}

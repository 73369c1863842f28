package store

import (
	"fmt"
	"strings"

	"github.com/smallbiznis/netlicensing/internal/apierror"
)

// Pair is one name=value condition of a list filter.
type Pair struct {
	Name  string
	Value string
}

// ParseFilter splits "name=value;name2=value2". Empty segments are ignored.
func ParseFilter(filter string) ([]Pair, error) {
	var out []Pair
	for _, segment := range strings.Split(filter, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, ok := strings.Cut(segment, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, apierror.MalformedRequest("filter",
				fmt.Sprintf("Filter segment '%s' is not in 'name=value' format.", segment))
		}
		out = append(out, Pair{Name: name, Value: strings.TrimSpace(value)})
	}
	return out, nil
}

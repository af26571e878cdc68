// Package loader exposes the splitter through the host bundler's loader
// interface: source in, module slice out, template handed to a plugin.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Name is the loader request prefix.
const Name = "@nearmap/react-entry-loader"

// ErrMissingOutput is returned when loader options name no output asset.
var ErrMissingOutput = errors.New("loader options require an output")

// Options are the per-unit loader options: the asset to generate and the
// props the template view receives.
type Options struct {
	Output   string
	Props    map[string]interface{}
	Filename string
}

// ParseQuery parses a loader query, either "?{json}" or "?output=x&title=y".
func ParseQuery(query string) (*Options, error) {
	query = strings.TrimPrefix(query, "?")
	values := map[string]interface{}{}
	if strings.HasPrefix(strings.TrimSpace(query), "{") {
		if err := json.Unmarshal([]byte(query), &values); err != nil {
			return nil, fmt.Errorf("invalid loader query %q: %w", query, err)
		}
	} else {
		parsed, err := url.ParseQuery(query)
		if err != nil {
			return nil, fmt.Errorf("invalid loader query %q: %w", query, err)
		}
		for key, items := range parsed {
			if len(items) == 1 {
				values[key] = items[0]
				continue
			}
			list := make([]interface{}, len(items))
			for i, item := range items {
				list[i] = item
			}
			values[key] = list
		}
	}
	ret := &Options{Props: map[string]interface{}{}}
	for key, value := range values {
		if key == "output" {
			output, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("invalid loader output: %v", value)
			}
			ret.Output = output
			continue
		}
		ret.Props[key] = value
	}
	if ret.Output == "" {
		return nil, ErrMissingOutput
	}
	return ret, nil
}

// Request builds the loader request splitting src with options.
func Request(options *Options, src string) (string, error) {
	values := map[string]interface{}{}
	for key, value := range options.Props {
		values[key] = value
	}
	values["output"] = options.Output
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return Name + "?" + string(data) + "!" + src, nil
}

package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	var testCases = []struct {
		description string
		query       string
		output      string
		props       map[string]interface{}
		expectErr   error
	}{
		{
			description: "json",
			query:       `?{"output":"page1.html","title":"Page 1","scripts":["page1.js"]}`,
			output:      "page1.html",
			props:       map[string]interface{}{"title": "Page 1", "scripts": []interface{}{"page1.js"}},
		},
		{
			description: "url encoded",
			query:       "?output=page2.html&title=Page%202&tag=a&tag=b",
			output:      "page2.html",
			props:       map[string]interface{}{"title": "Page 2", "tag": []interface{}{"a", "b"}},
		},
		{
			description: "output only",
			query:       "output=index.html",
			output:      "index.html",
			props:       map[string]interface{}{},
		},
		{description: "missing output", query: `?{"title":"x"}`, expectErr: ErrMissingOutput},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			options, err := ParseQuery(testCase.query)
			if testCase.expectErr != nil {
				assert.ErrorIs(t, err, testCase.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.output, options.Output)
			assert.Equal(t, testCase.props, options.Props)
		})
	}
	_, err := ParseQuery("?{broken")
	assert.Error(t, err)
}

func TestRequest(t *testing.T) {
	request, err := Request(&Options{Output: "page1.html", Props: map[string]interface{}{"title": "Page 1"}}, "./src/page1.js")
	require.NoError(t, err)
	assert.Equal(t, `@nearmap/react-entry-loader?{"output":"page1.html","title":"Page 1"}!./src/page1.js`, request)

	options, err := ParseQuery(request[len(Name):len(request)-len("!./src/page1.js")])
	require.NoError(t, err)
	assert.Equal(t, "page1.html", options.Output)
	assert.Equal(t, "Page 1", options.Props["title"])
}

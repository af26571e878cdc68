package inspector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/entrysplit/inspector"
	"github.com/viant/entrysplit/inspector/jsx"
	"github.com/viant/entrysplit/syntax"
)

func TestFactory_InspectSource(t *testing.T) {
	tests := []struct {
		description string
		filename    string
		source      string
		expectForm  jsx.Form
		expectErr   error
		wantErr     bool
	}{
		{
			description: "jsx page",
			filename:    "page.jsx",
			source:      "import {Module} from 'react-entry-loader/injectors';\nexport default ()=> <Module onLoad={f}><A /></Module>;\n",
			expectForm:  jsx.Extended,
		},
		{
			description: "tsx page",
			filename:    "page.tsx",
			source:      "import {Renderer} from 'react-entry-loader/injectors';\nconst id: string = 'x';\nexport default ()=> <Renderer id=\"app\"><A /></Renderer>;\n",
			expectForm:  jsx.Legacy,
		},
		{
			description: "stylesheet",
			filename:    "page.css",
			source:      "body {}",
			wantErr:     true,
		},
		{
			description: "parse error",
			filename:    "page.js",
			source:      "export default (",
			expectErr:   syntax.ErrParse,
		},
		{
			description: "no marker",
			filename:    "page.js",
			source:      "export default ()=> null;\n",
			expectErr:   jsx.ErrMissingInjectionPoint,
		},
	}

	factory := inspector.NewFactory(nil)
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			unit, err := factory.InspectSource(context.Background(), tc.filename, []byte(tc.source))
			if tc.wantErr || tc.expectErr != nil {
				require.Error(t, err)
				if tc.expectErr != nil {
					assert.True(t, errors.Is(err, tc.expectErr), err.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectForm, unit.Point.Form)
			assert.NotNil(t, unit.Model)
		})
	}
}

func TestFactory_Supported(t *testing.T) {
	factory := inspector.NewFactory(nil)
	for _, filename := range []string{"a.js", "a.jsx", "a.mjs", "a.ts", "a.tsx"} {
		assert.True(t, factory.Supported(filename), filename)
	}
	for _, filename := range []string{"a.css", "a.json", "a"} {
		assert.False(t, factory.Supported(filename), filename)
	}
}

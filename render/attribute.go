package render

import (
	"strings"
)

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

func escape(text string) string {
	return escaper.Replace(text)
}

var voidElements = map[string]bool{
	"area":   true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true, "input": true,
	"keygen": true, "link": true, "meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// reservedProps never render as attributes.
var reservedProps = map[string]bool{
	"children":                       true,
	"key":                            true,
	"ref":                            true,
	"dangerouslySetInnerHTML":        true,
	"suppressContentEditableWarning": true,
	"suppressHydrationWarning":       true,
}

var attributeAliases = map[string]string{
	"className":       "class",
	"defaultChecked":  "checked",
	"defaultValue":    "value",
	"htmlFor":         "for",
	"httpEquiv":       "http-equiv",
	"acceptCharset":   "accept-charset",
	"accessKey":       "accesskey",
	"autoCapitalize":  "autocapitalize",
	"autoComplete":    "autocomplete",
	"autoFocus":       "autofocus",
	"autoPlay":        "autoplay",
	"allowFullScreen": "allowfullscreen",
	"cellPadding":     "cellpadding",
	"cellSpacing":     "cellspacing",
	"charSet":         "charset",
	"colSpan":         "colspan",
	"contentEditable": "contenteditable",
	"crossOrigin":     "crossorigin",
	"dateTime":        "datetime",
	"encType":         "enctype",
	"formAction":      "formaction",
	"formNoValidate":  "formnovalidate",
	"frameBorder":     "frameborder",
	"hrefLang":        "hreflang",
	"inputMode":       "inputmode",
	"itemScope":       "itemscope",
	"maxLength":       "maxlength",
	"minLength":       "minlength",
	"noModule":        "nomodule",
	"noValidate":      "novalidate",
	"playsInline":     "playsinline",
	"readOnly":        "readonly",
	"referrerPolicy":  "referrerpolicy",
	"rowSpan":         "rowspan",
	"spellCheck":      "spellcheck",
	"srcDoc":          "srcdoc",
	"srcLang":         "srclang",
	"srcSet":          "srcset",
	"tabIndex":        "tabindex",
	"useMap":          "usemap",
	"xlinkHref":       "xlink:href",
	"xmlLang":         "xml:lang",
	"strokeWidth":     "stroke-width",
	"strokeLinecap":   "stroke-linecap",
	"strokeLinejoin":  "stroke-linejoin",
	"strokeDasharray": "stroke-dasharray",
	"fillRule":        "fill-rule",
	"clipRule":        "clip-rule",
	"fillOpacity":     "fill-opacity",
	"strokeOpacity":   "stroke-opacity",
	"stopColor":       "stop-color",
	"fontFamily":      "font-family",
	"fontSize":        "font-size",
	"textAnchor":      "text-anchor",
}

var booleanAttributes = map[string]bool{
	"allowfullscreen": true, "async": true, "autofocus": true, "autoplay": true, "checked": true,
	"controls":        true, "default": true, "defer": true, "disabled": true, "formnovalidate": true,
	"hidden":          true, "itemscope": true, "loop": true, "multiple": true, "muted": true, "nomodule": true,
	"novalidate":      true, "open": true, "playsinline": true, "readonly": true, "required": true,
	"reversed":        true, "scoped": true, "seamless": true, "selected": true,
}

// attributeName maps a prop name to the attribute it renders as.
func attributeName(prop string) string {
	if alias, ok := attributeAliases[prop]; ok {
		return alias
	}
	return prop
}

// isEventHandler reports props like onClick, which never render.
func isEventHandler(prop string) bool {
	return len(prop) > 2 && strings.HasPrefix(prop, "on") && prop[2] >= 'A' && prop[2] <= 'Z'
}

func isDataOrAria(name string) bool {
	return strings.HasPrefix(name, "data-") || strings.HasPrefix(name, "aria-")
}

// unitless style properties take plain numbers.
var unitless = map[string]bool{
	"animationIterationCount": true, "borderImageOutset": true, "borderImageSlice": true, "borderImageWidth": true,
	"boxFlex":                 true, "boxFlexGroup": true, "columnCount": true, "columns": true, "flex": true, "flexGrow": true,
	"flexPositive":            true, "flexShrink": true, "flexNegative": true, "flexOrder": true, "gridArea": true,
	"gridRow":                 true, "gridRowEnd": true, "gridRowSpan": true, "gridRowStart": true, "gridColumn": true,
	"gridColumnEnd":           true, "gridColumnSpan": true, "gridColumnStart": true, "fontWeight": true, "lineClamp": true,
	"lineHeight":              true, "opacity": true, "order": true, "orphans": true, "tabSize": true, "widows": true,
	"zIndex":                  true, "zoom": true, "fillOpacity": true, "floodOpacity": true, "stopOpacity": true,
	"strokeDasharray":         true, "strokeDashoffset": true, "strokeMiterlimit": true, "strokeOpacity": true,
	"strokeWidth":             true,
}

// styleName hyphenates a camel cased style property; custom properties keep
// their name.
func styleName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			sb.WriteByte('-')
			sb.WriteRune(r + 'a' - 'A')
			continue
		}
		if i == 0 && strings.HasPrefix(name, "ms") && len(name) > 2 && name[2] >= 'A' && name[2] <= 'Z' {
			sb.WriteByte('-')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

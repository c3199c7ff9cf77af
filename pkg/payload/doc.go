// Package payload turns backend page descriptions (JSON or YAML) into
// model.Page values and back. Decoding checks the document against an
// embedded JSON Schema, compiles validation patterns through a shared LRU
// cache and enforces unique, non-empty field ids, so the engine only ever
// sees well-formed rules.
//
// A page document looks like:
//
//	{
//	  "stages": [
//	    {"type": "text", "text": "Hello", "size": 24, "bold": true},
//	    {"type": "image", "url": "https://example.com/banner.jpg"},
//	    {"type": "field", "field": {"id": "name", "displayName": "Name",
//	      "fieldType": "TEXT", "required": true, "regexp": "^[a-zA-Z]{2,30}$",
//	      "rulesDisplayName": "Latin letters", "defaultValue": "Vasya"}},
//	    {"type": "button", "text": "Next", "action": {"type": "showNext"}}
//	  ]
//	}
package payload

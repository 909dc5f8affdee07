package internal

import (
	"encoding/json"
	"sort"
)

// projectProperty is the database column used to group pages by project.
const projectProperty = "Project"

// blockPayload is the subset of a type-keyed block payload the flattener
// reads. Checked is only set for to_do blocks, Language only for code.
type blockPayload struct {
	RichText []RichText `json:"rich_text"`
	Checked  *bool      `json:"checked"`
	Language string     `json:"language"`
}

// FlattenBlock converts a raw block into the owned Block shape, without
// children. Unknown block types fall back to the first payload carrying a
// rich_text array; payload keys are scanned in sorted order so the fallback
// is deterministic.
func FlattenBlock(raw *NotionBlock) Block {
	block := Block{
		ID:   raw.ID,
		Type: raw.Type,
	}
	if block.Type == "" {
		block.Type = "unknown"
	}

	if payload, ok := raw.Payload[raw.Type]; ok {
		var p blockPayload
		if err := json.Unmarshal(payload, &p); err == nil {
			block.Text = plainText(p.RichText)
			if raw.Type == "to_do" {
				checked := p.Checked != nil && *p.Checked
				block.Checked = &checked
			}
			if raw.Type == "code" {
				block.Language = p.Language
			}
		}
		return block
	}

	// No payload under the declared type; scan the rest for anything with
	// rich text.
	keys := make([]string, 0, len(raw.Payload))
	for key := range raw.Payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		var p blockPayload
		if err := json.Unmarshal(raw.Payload[key], &p); err != nil {
			continue
		}
		if text := plainText(p.RichText); text != "" {
			block.Text = text
			break
		}
	}
	return block
}

func plainText(spans []RichText) string {
	var out string
	for _, span := range spans {
		out += span.PlainText
	}
	return out
}

// CoerceProperty reduces a typed property to a scalar or string slice using
// per-type rules. Unrecognized types coerce to the empty string; coercion
// never fails.
func CoerceProperty(p NotionProperty) any {
	switch p.Type {
	case "title":
		if len(p.Title) == 0 {
			return ""
		}
		return p.Title[0].PlainText
	case "rich_text":
		return plainText(p.RichText)
	case "select":
		if p.Select == nil {
			return ""
		}
		return p.Select.Name
	case "status":
		if p.Status == nil {
			return ""
		}
		return p.Status.Name
	case "multi_select":
		names := make([]string, 0, len(p.MultiSelect))
		for _, opt := range p.MultiSelect {
			names = append(names, opt.Name)
		}
		return names
	case "date":
		if p.Date == nil {
			return ""
		}
		return p.Date.Start
	case "checkbox":
		return p.Checkbox != nil && *p.Checkbox
	case "number":
		if p.Number == nil {
			return nil
		}
		return *p.Number
	case "url":
		return stringOrEmpty(p.URL)
	case "email":
		return stringOrEmpty(p.Email)
	case "phone_number":
		return stringOrEmpty(p.PhoneNumber)
	case "people":
		names := make([]string, 0, len(p.People))
		for _, person := range p.People {
			names = append(names, person.Name)
		}
		return names
	case "relation":
		ids := make([]string, 0, len(p.Relation))
		for _, rel := range p.Relation {
			ids = append(ids, rel.ID)
		}
		return ids
	default:
		return ""
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FlattenProperties coerces every property on a page.
func FlattenProperties(props map[string]NotionProperty) map[string]any {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]any, len(props))
	for name, prop := range props {
		out[name] = CoerceProperty(prop)
	}
	return out
}

// PageTitle returns the page's title from whichever property is the
// database's title column.
func PageTitle(props map[string]NotionProperty) string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prop := props[name]
		if prop.Type == "title" && len(prop.Title) > 0 {
			return prop.Title[0].PlainText
		}
	}
	return ""
}

// PageProject returns the project-name tag from the Project column, which
// may be a select or a status property.
func PageProject(props map[string]NotionProperty) string {
	prop, ok := props[projectProperty]
	if !ok {
		return ""
	}
	switch prop.Type {
	case "select":
		if prop.Select != nil {
			return prop.Select.Name
		}
	case "status":
		if prop.Status != nil {
			return prop.Status.Name
		}
	}
	return ""
}

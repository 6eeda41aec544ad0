package datatable

import "github.com/a-h/templ"

// RenderFunc renders a custom cell from the field's raw value and its record.
type RenderFunc func(value any, rec Record) templ.Component

// Column describes how one record field is displayed, sorted, and searched.
type Column struct {
	Key        string
	Header     string
	Sortable   bool
	Searchable bool

	// Render overrides the default cell output. Ignored when ImageText is set.
	Render RenderFunc

	// ImageText renders a thumbnail beside a text field.
	ImageText *ImageText
}

// ImageText configures a composite thumbnail + text cell.
type ImageText struct {
	ImageKey    string // field holding an image object or a list of them
	TextKey     string // field shown beside the thumbnail; also the search target
	URLKey      string // property of the image object holding its URL (default "image_url")
	FallbackSrc string // used when no image is present or it fails to load
	Width       string // default "50px"
	Height      string // default "50px"
	Class       string
}

func (c Column) searchKey() string {
	if c.ImageText != nil {
		return c.ImageText.TextKey
	}
	return c.Key
}

func (it *ImageText) urlKey() string {
	if it.URLKey == "" {
		return "image_url"
	}
	return it.URLKey
}

func (it *ImageText) size() (width, height string) {
	width, height = it.Width, it.Height
	if width == "" {
		width = "50px"
	}
	if height == "" {
		height = "50px"
	}
	return width, height
}

// ImageSource picks the thumbnail URL for rec: the first element of a list,
// else the object's URL property, else the fallback.
func (it *ImageText) ImageSource(rec Record) string {
	if list := rec.List(it.ImageKey); list != nil {
		if len(list) > 0 {
			if src := imageURL(list[0], it.urlKey()); src != "" {
				return src
			}
		}
		return it.FallbackSrc
	}
	v, _ := rec.Value(it.ImageKey)
	if src := imageURL(v, it.urlKey()); src != "" {
		return src
	}
	return it.FallbackSrc
}

func imageURL(v any, key string) string {
	if obj, ok := asRecord(v); ok {
		return obj.Text(key)
	}
	return ""
}

// FilterOption is one choice of the categorical filter.
type FilterOption struct {
	Label string
	Value string
}

// FilterAll is the option value that disables the categorical filter.
const FilterAll = "all"

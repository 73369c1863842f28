package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Item types as reported by the service.
const (
	TypeProduct         = "Product"
	TypeProductModule   = "ProductModule"
	TypeLicenseTemplate = "LicenseTemplate"
	TypeLicensee        = "Licensee"
	TypeLicense         = "License"
)

// Info types.
const (
	InfoError   = "ERROR"
	InfoWarning = "WARNING"
	InfoInfo    = "INFO"
)

// Envelope is the body of every service response.
type Envelope struct {
	Infos Infos  `json:"infos"`
	Items Items  `json:"items"`
	TTL   string `json:"ttl,omitempty"`
}

type Infos struct {
	Info []Info `json:"info"`
}

// Info is a message attached to a response. Errors arrive as infos of
// type ERROR, with the exception class as ID.
type Info struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type Items struct {
	Item        []Item `json:"item"`
	PageNumber  Attr   `json:"pagenumber,omitempty"`
	ItemsNumber Attr   `json:"itemsnumber,omitempty"`
	TotalPages  Attr   `json:"totalpages,omitempty"`
	TotalItems  Attr   `json:"totalitems,omitempty"`
	HasNext     Attr   `json:"hasnext,omitempty"`
}

// Item is one entity as a flat list of named properties plus nested lists.
type Item struct {
	Type       string     `json:"type"`
	Properties []Property `json:"property"`
	Lists      []ItemList `json:"list,omitempty"`
}

type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ItemList is a named group of properties nested in an item.
type ItemList struct {
	Name       string     `json:"name"`
	Properties []Property `json:"property,omitempty"`
	Lists      []ItemList `json:"list,omitempty"`
}

// Property returns the value of the named property.
func (i Item) Property(name string) (string, bool) {
	for _, p := range i.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// PropertyMap returns all properties keyed by name. Later duplicates win.
func (i Item) PropertyMap() map[string]string {
	out := make(map[string]string, len(i.Properties))
	for _, p := range i.Properties {
		out[p.Name] = p.Value
	}
	return out
}

// Add appends a property, skipping empty values.
func (i *Item) Add(name, value string) {
	if value == "" {
		return
	}
	i.Properties = append(i.Properties, Property{Name: name, Value: value})
}

// ErrorInfo returns the first info of type ERROR.
func (e *Envelope) ErrorInfo() (Info, bool) {
	if e == nil {
		return Info{}, false
	}
	for _, info := range e.Infos.Info {
		if strings.EqualFold(info.Type, InfoError) {
			return info, true
		}
	}
	return Info{}, false
}

// FirstItem returns the first item of the given type.
func (e *Envelope) FirstItem(itemType string) (Item, bool) {
	if e == nil {
		return Item{}, false
	}
	for _, item := range e.Items.Item {
		if item.Type == itemType {
			return item, true
		}
	}
	return Item{}, false
}

// ItemsOf returns every item of the given type in response order.
func (e *Envelope) ItemsOf(itemType string) []Item {
	if e == nil {
		return nil
	}
	out := make([]Item, 0, len(e.Items.Item))
	for _, item := range e.Items.Item {
		if item.Type == itemType {
			out = append(out, item)
		}
	}
	return out
}

// PageInfo holds the paging attributes of a list response.
type PageInfo struct {
	PageNumber  int
	ItemsNumber int
	TotalPages  int
	TotalItems  int
	HasNext     bool
}

// Page reads the paging attributes. Missing attributes describe a single
// page holding every returned item.
func (e *Envelope) Page() PageInfo {
	if e == nil {
		return PageInfo{}
	}
	n := len(e.Items.Item)
	info := PageInfo{
		PageNumber:  e.Items.PageNumber.Int(0),
		ItemsNumber: e.Items.ItemsNumber.Int(n),
		TotalPages:  e.Items.TotalPages.Int(1),
		TotalItems:  e.Items.TotalItems.Int(n),
		HasNext:     e.Items.HasNext.Bool(false),
	}
	if n == 0 && e.Items.TotalPages == "" {
		info.TotalPages = 0
	}
	return info
}

// SetPage writes paging attributes onto the envelope.
func (e *Envelope) SetPage(p PageInfo) {
	e.Items.PageNumber = Attr(strconv.Itoa(p.PageNumber))
	e.Items.ItemsNumber = Attr(strconv.Itoa(p.ItemsNumber))
	e.Items.TotalPages = Attr(strconv.Itoa(p.TotalPages))
	e.Items.TotalItems = Attr(strconv.Itoa(p.TotalItems))
	e.Items.HasNext = Attr(strconv.FormatBool(p.HasNext))
}

// Attr is a scalar attribute the service may send as a string, number or
// boolean. It is always written back as a string.
type Attr string

func (a *Attr) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Attr(s)
		return nil
	}
	*a = Attr(data)
	return nil
}

func (a Attr) Int(def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(string(a)))
	if err != nil {
		return def
	}
	return v
}

func (a Attr) Bool(def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(string(a)))
	if err != nil {
		return def
	}
	return v
}

// Package entity holds what every licensing entity shares: its number, the
// active flag and the open set of custom properties.
package entity

import (
	"sort"
	"strings"
)

// Property names shared by several entities.
const (
	PropNumber = "number"
	PropActive = "active"
	PropName   = "name"
	PropInUse  = "inUse"
)

// Fields returns the property names every entity maps to typed fields,
// followed by extra. Custom properties can not use these names.
func Fields(extra ...string) []string {
	return append([]string{PropNumber, PropActive, PropName, PropInUse}, extra...)
}

// Base is embedded by every entity.
type Base struct {
	Number     string            `json:"number,omitempty"`
	Active     *bool             `json:"active,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Based is implemented by anything that embeds Base.
type Based interface {
	EntityBase() *Base
}

// PropertyHolder exposes custom properties without the rest of the entity.
type PropertyHolder interface {
	CustomProperties() map[string]string
}

func (b *Base) EntityBase() *Base { return b }

func (b *Base) CustomProperties() map[string]string {
	if b == nil {
		return nil
	}
	return b.Properties
}

// IsActive reports the active flag, treating unset as true.
func (b *Base) IsActive() bool {
	if b == nil || b.Active == nil {
		return true
	}
	return *b.Active
}

func (b *Base) SetProperty(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if b.Properties == nil {
		b.Properties = map[string]string{}
	}
	b.Properties[name] = value
}

func (b *Base) Property(name string) (string, bool) {
	if b == nil || b.Properties == nil {
		return "", false
	}
	v, ok := b.Properties[name]
	return v, ok
}

func (b *Base) RemoveProperty(name string) {
	if b == nil || b.Properties == nil {
		return
	}
	delete(b.Properties, name)
}

// PropertyNames returns custom property names in sorted order so encoded
// requests are deterministic.
func (b *Base) PropertyNames() []string {
	if b == nil {
		return nil
	}
	names := make([]string, 0, len(b.Properties))
	for k := range b.Properties {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// CopyProperties returns a detached copy of props.
func CopyProperties(props map[string]string) map[string]string {
	if props == nil {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

func BoolPtr(v bool) *bool { return &v }

func StringPtr(v string) *string { return &v }

// DefaultBool returns *v, or def when v is unset.
func DefaultBool(v *bool, def bool) *bool {
	if v != nil {
		return BoolPtr(*v)
	}
	return BoolPtr(def)
}

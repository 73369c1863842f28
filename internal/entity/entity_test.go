package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseProperties(t *testing.T) {
	var b Base
	b.SetProperty("timeVolume", "30")
	b.SetProperty(" ", "ignored")
	b.SetProperty("maxSessions", "2")

	v, ok := b.Property("timeVolume")
	assert.True(t, ok)
	assert.Equal(t, "30", v)
	assert.Equal(t, []string{"maxSessions", "timeVolume"}, b.PropertyNames())

	b.RemoveProperty("maxSessions")
	_, ok = b.Property("maxSessions")
	assert.False(t, ok)
}

func TestBaseActiveDefaultsTrue(t *testing.T) {
	var b Base
	assert.True(t, b.IsActive())
	b.Active = BoolPtr(false)
	assert.False(t, b.IsActive())
}

func TestDefaultBool(t *testing.T) {
	assert.True(t, *DefaultBool(nil, true))
	assert.False(t, *DefaultBool(BoolPtr(false), true))
}

func TestCopyPropertiesDetaches(t *testing.T) {
	src := map[string]string{"a": "1"}
	dst := CopyProperties(src)
	dst["a"] = "2"
	assert.Equal(t, "1", src["a"])
	assert.Nil(t, CopyProperties(nil))
}

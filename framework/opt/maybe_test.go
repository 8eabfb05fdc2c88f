package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNone(t *testing.T) {
	assert.False(t, None[string]().IsDefined())

	assert.Equal(t, 0, None[int]().Value())
	assert.Equal(t, "", None[string]().Value())
	assert.Nil(t, None[*string]().Value())
}

func TestSome(t *testing.T) {
	assert.True(t, Some("").IsDefined())

	assert.Equal(t, 1, Some(1).Value())
	assert.Equal(t, "x", Some("x").Value())
}

func TestOrElse(t *testing.T) {
	assert.Equal(t, 3, None[int]().OrElse(3))
	assert.Equal(t, 4, Some(4).OrElse(3))
}

func TestFromPtr(t *testing.T) {
	assert.Equal(t, None[string](), FromPtr((*string)(nil)))

	s := "x"
	assert.Equal(t, Some(s), FromPtr(&s))
}

func TestString(t *testing.T) {
	assert.Equal(t, "[none]", None[int]().String())
	assert.Equal(t, "3", Some(3).String())
}

package envutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("HM_TEST_INT", "abc")
	assert.Equal(t, 7, Int("HM_TEST_INT", 7))
	t.Setenv("HM_TEST_INT", " 12 ")
	assert.Equal(t, 12, Int("HM_TEST_INT", 7))
}

func TestBool(t *testing.T) {
	t.Setenv("HM_TEST_BOOL", "on")
	assert.True(t, Bool("HM_TEST_BOOL", false))
	t.Setenv("HM_TEST_BOOL", "0")
	assert.False(t, Bool("HM_TEST_BOOL", true))
	t.Setenv("HM_TEST_BOOL", "maybe")
	assert.True(t, Bool("HM_TEST_BOOL", true))
}

func TestList(t *testing.T) {
	t.Setenv("HM_TEST_LIST", "http://a, ,http://b")
	assert.Equal(t, []string{"http://a", "http://b"}, List("HM_TEST_LIST", nil))
	t.Setenv("HM_TEST_LIST", "")
	assert.Equal(t, []string{"x"}, List("HM_TEST_LIST", []string{"x"}))
}

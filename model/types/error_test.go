package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackError(t *testing.T) {
	cause := errors.New("boom")
	err := NewCallbackError("test-java-actionpoint", "java-test failed", cause)
	assert.True(t, errors.Is(err, ErrCallbackFailed))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "java-test failed: boom", err.Error())

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, wrapped, NewCallbackError("other", "other failed", wrapped))

	again := NewCallbackError("other", "other failed", err)
	assert.Same(t, err, again)
}

func TestNewPanicError(t *testing.T) {
	err := NewPanicError("cp", "", "bad state")
	assert.True(t, errors.Is(err, ErrCallbackFailed))
	assert.Equal(t, "cp failed: panic: bad state", err.Error())

	cause := errors.New("io")
	err = NewPanicError("cp", "x failed", cause)
	assert.True(t, errors.Is(err, cause))
}

func TestKeyPath(t *testing.T) {
	testCases := []struct {
		description string
		path        string
		expect      KeyPath
		text        string
	}{
		{description: "empty", path: "", expect: nil, text: "/"},
		{description: "plain", path: "/a/b", expect: KeyPath{"a", "b"}, text: "/a/b"},
		{description: "keyed", path: "/devices/device{ce0}/config", expect: KeyPath{"devices", "device", "{ce0}", "config"}, text: "/devices/device{ce0}/config"},
		{description: "leading key", path: "{x}/a", expect: KeyPath{"{x}", "a"}, text: "/{x}/a"},
		{description: "leading key with slash", path: "/{x}/a", expect: KeyPath{"{x}", "a"}, text: "/{x}/a"},
		{description: "key only", path: "{x}", expect: KeyPath{"{x}"}, text: "/{x}"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual := ParseKeyPath(testCase.path)
			assert.Equal(t, testCase.expect, actual)
			assert.Equal(t, testCase.text, actual.String())
			assert.Equal(t, testCase.expect, ParseKeyPath(actual.String()))
		})
	}
}

func TestParams_Lookup(t *testing.T) {
	params := Params{NewParam("testpkg-java", "message", "hi")}
	assert.Equal(t, "testpkg-java:message", params.Lookup("message").QualifiedTag())
	assert.Nil(t, params.Lookup("missing"))
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestFileError(t *testing.T) {
	fileErr := NewFileError("cannot open", "secrets/plan.txt", FileNotFound, nil)
	assert.Equal(t, "cannot open: secrets/plan.txt", fileErr.Error())
	assert.Equal(t, "secrets/plan.txt", fileErr.Path())
	assert.Equal(t, FileNotFound, fileErr.Kind())

	origErr := fmt.Errorf("no such file")
	fileErr = NewFileError("cannot open", "plan.txt", FileNotFound, origErr)
	assert.Equal(t, "cannot open: plan.txt: no such file", fileErr.Error())
	assert.Equal(t, origErr, Unwrap(fileErr))

	assert.True(t, errors.Is(fileErr, ErrFileNotFound))
	assert.False(t, errors.Is(fileErr, ErrAccessDenied))
	assert.False(t, errors.Is(fileErr, ErrDirectoryCorrupted))

	denied := NewFileError("gated", "plan.txt", FileAccessDenied, nil)
	assert.True(t, errors.Is(denied, ErrAccessDenied))

	corrupted := NewFileError("missing index", "tools", DirectoryCorrupted, nil)
	assert.True(t, errors.Is(Wrap(corrupted, "listing"), ErrDirectoryCorrupted))
	assert.False(t, errors.Is(corrupted, ErrInvalidPath))
}

func TestSentinelsMatchByKind(t *testing.T) {
	err := NewFileError("cannot open", "a/b.txt", FileNotFound, nil)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.False(t, errors.Is(err, ErrAccessDenied))

	wrapped := fmt.Errorf("dispatch: %w", err)
	assert.True(t, errors.Is(wrapped, ErrFileNotFound))

	cfgErr := NewConfigError("bad json", "config.json", InvalidConfig, nil)
	assert.True(t, errors.Is(cfgErr, ErrInvalidConfig))
	assert.False(t, errors.Is(New("plain"), ErrInvalidConfig))
	assert.False(t, errors.Is(NewConfigError("read-only", "commands", ReadOnlySetting, nil), ErrInvalidConfig))
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("cannot parse", "config.json", InvalidConfig, nil)
	assert.Equal(t, "cannot parse: config.json", configErr.Error())
	assert.Equal(t, "config.json", configErr.Param())
	assert.True(t, errors.Is(configErr, ErrInvalidConfig))

	origErr := fmt.Errorf("unexpected EOF")
	configErr = NewConfigError("cannot parse", "config.json", InvalidConfig, origErr)
	assert.Equal(t, "cannot parse: config.json: unexpected EOF", configErr.Error())

	colorErr := NewConfigError("bad color", "bgcolor", InvalidColor, nil)
	assert.False(t, errors.Is(colorErr, ErrInvalidConfig))
}

func TestCommandError(t *testing.T) {
	cmdErr := NewCommandError("unknown verb", "rm", UnknownCommand)
	assert.Equal(t, "unknown verb: rm", cmdErr.Error())
	assert.Equal(t, "rm", cmdErr.Verb())
	assert.Equal(t, UnknownCommand, KindOf(cmdErr))
	assert.Equal(t, Unknown, KindOf(New("other")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, Unknown, KindOf(fmt.Errorf("plain")))

	err := NewFileError("gated", "x", FileAccessDenied, nil)
	assert.Equal(t, FileAccessDenied, KindOf(Wrap(err, "read")))
	assert.Equal(t, "access denied", KindOf(err).String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
}

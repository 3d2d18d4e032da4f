package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DB_HOST", "")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestDatesFromFile(t *testing.T) {
	out, err := run(t, "dates", "--file", "../parser/testdata/catalog.html")
	require.NoError(t, err)
	assert.Contains(t, out, "Всего курсов: 6")
	assert.Contains(t, out, "Highload Architect - 09 сентября 2025")
}

func TestDatesRequiresSource(t *testing.T) {
	_, err := run(t, "dates")
	require.Error(t, err)

	_, err = run(t, "dates", "--file", "a.html", "--url", "https://otus.ru/catalog/courses")
	require.Error(t, err)
}

func TestDatabaseCommandsNeedHost(t *testing.T) {
	_, err := run(t, "migrate")
	assert.ErrorIs(t, err, ErrDatabaseDisabled)

	_, err = run(t, "runs", "list")
	assert.ErrorIs(t, err, ErrDatabaseDisabled)

	_, err = run(t, "serve")
	assert.ErrorIs(t, err, ErrDatabaseDisabled)
}

func TestCourseNeedsURL(t *testing.T) {
	_, err := run(t, "course")
	require.Error(t, err)
}

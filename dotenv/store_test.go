// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package dotenv

import (
	"os"
	"testing"

	"github.com/z5labs/envbind/config"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	entries := []Entry{
		{Key: "HOST", Value: "file-host"},
		{Key: "PORT", Value: "1"},
		{Key: "PORT", Value: "2"},
	}
	environ := []string{"HOST=env-host", "=C:=C:\\", "NOEQUALS", "EMPTY="}

	testCases := []struct {
		name     string
		fileWins bool
		key      string
		expected string
		found    bool
	}{
		{name: "environment wins by default", key: "HOST", expected: "env-host", found: true},
		{name: "file wins when requested", fileWins: true, key: "HOST", expected: "file-host", found: true},
		{name: "last duplicate entry wins", key: "PORT", expected: "2", found: true},
		{name: "empty environment value is present", key: "EMPTY", expected: "", found: true},
		{name: "variable without equals is ignored", key: "NOEQUALS", found: false},
		{name: "unknown key", key: "MISSING", found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := New(entries, environ, tc.fileWins)

			v, ok := d.Get(tc.key)
			require.Equal(t, tc.found, ok)
			require.Equal(t, tc.expected, v)
		})
	}
}

func TestDotenv_Entries(t *testing.T) {
	d := New(
		[]Entry{{Key: "B", Value: "2"}, {Key: "A", Value: "1"}, {Key: "B", Value: "3"}},
		[]string{"C=env"},
		false,
	)

	require.Equal(t, 3, d.Len())
	require.Equal(t, []Entry{
		{Key: "A", Value: "1"},
		{Key: "B", Value: "3"},
		{Key: "C", Value: "env"},
	}, d.Entries())
	require.Equal(t, []Entry{
		{Key: "B", Value: "2"},
		{Key: "A", Value: "1"},
		{Key: "B", Value: "3"},
	}, d.Declared())
}

func TestDotenv_Nil(t *testing.T) {
	var d *Dotenv

	_, ok := d.Get("A")
	require.False(t, ok)
	require.Zero(t, d.Len())
	require.Nil(t, d.Entries())
	require.Nil(t, d.Declared())
}

func TestDotenv_Export(t *testing.T) {
	const (
		existing = "ENVBIND_TEST_EXPORT_EXISTING"
		fresh    = "ENVBIND_TEST_EXPORT_FRESH"
	)
	t.Setenv(existing, "old")
	t.Cleanup(func() {
		os.Unsetenv(fresh)
	})

	d := New([]Entry{{Key: existing, Value: "new"}, {Key: fresh, Value: "value"}}, nil, false)

	t.Run("will keep variables which are already set", func(t *testing.T) {
		require.NoError(t, d.Export(false))
		require.Equal(t, "old", os.Getenv(existing))
		require.Equal(t, "value", os.Getenv(fresh))
	})

	t.Run("will replace variables if overwrite is true", func(t *testing.T) {
		require.NoError(t, d.Export(true))
		require.Equal(t, "new", os.Getenv(existing))
	})
}

func TestDotenv_Apply(t *testing.T) {
	t.Run("will nest dotted keys", func(t *testing.T) {
		d := New([]Entry{{Key: "db.host", Value: "localhost"}, {Key: "PORT", Value: "3306"}}, nil, true)

		m, err := config.Read(d)
		require.NoError(t, err)

		v, ok := m.Get("db.host")
		require.True(t, ok)
		require.Equal(t, "localhost", v)

		var cfg struct {
			DB struct {
				Host string `config:"host"`
			} `config:"db"`
			Port int `config:"PORT"`
		}
		require.NoError(t, m.Unmarshal(&cfg))
		require.Equal(t, "localhost", cfg.DB.Host)
		require.Equal(t, 3306, cfg.Port)
	})

	t.Run("will return an error if a key is used as both value and table", func(t *testing.T) {
		d := New([]Entry{{Key: "db", Value: "x"}, {Key: "db.host", Value: "y"}}, nil, true)

		_, err := config.Read(d)

		var verr config.UnexpectedKeyValueTypeError
		require.ErrorAs(t, err, &verr)
	})
}

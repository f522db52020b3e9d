// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package maskslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Message string `json:"msg"`
	Key     string `json:"key"`
	Value   string `json:"value"`
}

func decode(t *testing.T, buf *bytes.Buffer) record {
	t.Helper()

	var r record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
	return r
}

func TestHandler_Handle(t *testing.T) {
	t.Run("will not mask the value", func(t *testing.T) {
		t.Run("if the key does not look secret", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{})))

			logger.Info("resolved", slog.String("key", "DB_HOST"), slog.String("value", "localhost"))

			r := decode(t, &buf)
			if !assert.Equal(t, "resolved", r.Message) {
				return
			}
			if !assert.Equal(t, "localhost", r.Value) {
				return
			}
		})

		t.Run("if there is no key attr", func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{})))

			logger.Info("resolved", slog.String("value", "plain"))

			r := decode(t, &buf)
			if !assert.Equal(t, "plain", r.Value) {
				return
			}
		})
	})

	t.Run("will mask the value", func(t *testing.T) {
		testCases := []struct {
			name string
			key  string
		}{
			{name: "password", key: "DB_PASSWORD"},
			{name: "lower case secret", key: "client_secret"},
			{name: "token", key: "API_TOKEN"},
			{name: "key", key: "AWS_ACCESS_KEY_ID"},
			{name: "credential", key: "GOOGLE_APPLICATION_CREDENTIALS"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				var buf bytes.Buffer
				logger := slog.New(NewHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{})))

				logger.Info("resolved", slog.String("key", tc.key), slog.String("value", "hunter2"))

				r := decode(t, &buf)
				require.Equal(t, tc.key, r.Key)
				require.Equal(t, Mask, r.Value)
			})
		}
	})

	t.Run("will use custom attr names and markers", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(NewHandler(
			slog.NewJSONHandler(&buf, &slog.HandlerOptions{}),
			KeyAttr("name"),
			ValueAttr("raw"),
			Markers("pin"),
		))

		logger.Info("resolved", slog.String("name", "CARD_PIN"), slog.String("raw", "1234"))

		var r struct {
			Raw string `json:"raw"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
		require.Equal(t, Mask, r.Raw)
	})
}

func TestHandler_WithAttrs(t *testing.T) {
	t.Run("will mask values logged after a secret key was bound", func(t *testing.T) {
		var buf bytes.Buffer
		var h slog.Handler = NewHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{}))
		h = h.WithAttrs([]slog.Attr{slog.String("key", "DB_PASSWORD")})

		logger := slog.New(h)
		logger.Info("resolved", slog.String("value", "hunter2"))

		r := decode(t, &buf)
		require.Equal(t, "DB_PASSWORD", r.Key)
		require.Equal(t, Mask, r.Value)
	})

	t.Run("will mask a bound value with a secret key", func(t *testing.T) {
		var buf bytes.Buffer
		var h slog.Handler = NewHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{}))
		h = h.WithAttrs([]slog.Attr{slog.String("key", "TOKEN"), slog.String("value", "abc")})

		slog.New(h).Info("resolved")

		r := decode(t, &buf)
		require.Equal(t, Mask, r.Value)
	})

	t.Run("will keep masking inside groups", func(t *testing.T) {
		var buf bytes.Buffer
		var h slog.Handler = NewHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{}))
		h = h.WithAttrs([]slog.Attr{slog.String("key", "SECRET")}).WithGroup("entry")

		slog.New(h).Info("resolved", slog.String("value", "abc"))

		var r struct {
			Entry struct {
				Value string `json:"value"`
			} `json:"entry"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &r))
		require.Equal(t, Mask, r.Entry.Value)
	})
}

func TestHandler_IsSecret(t *testing.T) {
	h := NewHandler(slog.NewJSONHandler(&bytes.Buffer{}, nil))

	require.True(t, h.IsSecret("db_password"))
	require.False(t, h.IsSecret("DB_HOST"))
	require.True(t, IsSecret("Api_Token"))
	require.False(t, IsSecret("PORT"))
	require.Equal(t, []string{"PASSWORD", "SECRET", "TOKEN", "KEY", "CREDENTIAL"}, DefaultMarkers)
}

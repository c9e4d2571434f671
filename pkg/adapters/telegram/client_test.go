package telegram_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mohammaddehghani/fuelrep/pkg/adapters/telegram"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendText(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := telegram.NewClient("123:abc", telegram.WithAPIBase(srv.URL))
	err := c.SendText(context.Background(), "42", "hello", [][]string{{"a", "b"}})
	require.NoError(t, err)

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "42", gotBody["chat_id"])
	assert.Equal(t, "hello", gotBody["text"])
	markup, ok := gotBody["reply_markup"].(map[string]any)
	require.True(t, ok, "keyboard should be attached")
	assert.Equal(t, true, markup["resize_keyboard"])
}

func TestClient_SendText_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"description":"chat not found"}`)
	}))
	defer srv.Close()

	c := telegram.NewClient("123:abc", telegram.WithAPIBase(srv.URL))
	err := c.SendText(context.Background(), "42", "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestClient_SendDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "42", r.FormValue("chat_id"))
		assert.Equal(t, "backup", r.FormValue("caption"))

		file, header, err := r.FormFile("document")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "fuel_backup.csv", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "id,odometer\n", string(content))

		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := telegram.NewClient("123:abc", telegram.WithAPIBase(srv.URL))
	err := c.SendDocument(context.Background(), "42", domain.Attachment{
		Name:    "fuel_backup.csv",
		Content: []byte("id,odometer\n"),
		Caption: "backup",
	})
	require.NoError(t, err)
}

func TestClient_FetchDocument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bot123:abc/getFile", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "file-1", r.URL.Query().Get("file_id"))
		fmt.Fprint(w, `{"ok":true,"result":{"file_path":"documents/data.csv"}}`)
	})
	mux.HandleFunc("/file/bot123:abc/documents/data.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "odometer,volume\n100,20\n")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := telegram.NewClient("123:abc", telegram.WithAPIBase(srv.URL))
	data, err := c.FetchDocument(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, "odometer,volume\n100,20\n", string(data))
}

func TestClient_FetchDocument_Unresolvable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false}`)
	}))
	defer srv.Close()

	c := telegram.NewClient("123:abc", telegram.WithAPIBase(srv.URL))
	_, err := c.FetchDocument(context.Background(), "missing")
	assert.Error(t, err)
}

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{name: "eleven digits get dashed", phone: "01012345678", want: "010-1234-5678"},
		{name: "short numbers pass through", phone: "0212345678", want: "0212345678"},
		{name: "already formatted passes through", phone: "010-1234-5678", want: "010-1234-5678"},
		{name: "empty passes through", phone: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhoneNumber(tt.phone))
		})
	}
}

func TestKakaoSender_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("posts json with basic auth", func(t *testing.T) {
		var got struct {
			Phone   string `json:"phone"`
			Message string `json:"message"`
		}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "autoever", user)
			assert.Equal(t, "1234", pass)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		s := NewKakaoSender(srv.URL, "autoever", "1234", nil)
		ok := s.Send(ctx, "01012345678", "안녕하세요")

		assert.True(t, ok)
		assert.Equal(t, "010-1234-5678", got.Phone)
		assert.Equal(t, "안녕하세요", got.Message)
	})

	t.Run("non-200 means not delivered", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		s := NewKakaoSender(srv.URL, "autoever", "1234", nil)
		assert.False(t, s.Send(ctx, "01012345678", "안녕하세요"))
	})

	t.Run("unreachable provider means not delivered", func(t *testing.T) {
		s := NewKakaoSender("http://127.0.0.1:1", "autoever", "1234", nil)
		assert.False(t, s.Send(ctx, "01012345678", "안녕하세요"))
	})
}

func TestSMSSender_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("posts form with phone in query and parses result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "autoever", user)
			assert.Equal(t, "5678", pass)
			assert.Equal(t, "010-1234-5678", r.URL.Query().Get("phone"))
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "안녕하세요", r.PostForm.Get("message"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"result":"OK"}`))
		}))
		defer srv.Close()

		s := NewSMSSender(srv.URL, "autoever", "5678", nil)
		assert.True(t, s.Send(ctx, "01012345678", "안녕하세요"))
	})

	t.Run("200 without OK body means not delivered", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"result":"FAIL"}`))
		}))
		defer srv.Close()

		s := NewSMSSender(srv.URL, "autoever", "5678", nil)
		assert.False(t, s.Send(ctx, "01012345678", "안녕하세요"))
	})

	t.Run("malformed body means not delivered", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		s := NewSMSSender(srv.URL, "autoever", "5678", nil)
		assert.False(t, s.Send(ctx, "01012345678", "안녕하세요"))
	})

	t.Run("non-200 means not delivered", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		s := NewSMSSender(srv.URL, "autoever", "5678", nil)
		assert.False(t, s.Send(ctx, "01012345678", "안녕하세요"))
	})
}

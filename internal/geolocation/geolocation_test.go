package geolocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

func TestIPLocator_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","lat":47.6062,"lon":-122.3321}`))
	}))
	defer server.Close()

	l := NewIPLocator(server.URL, time.Second, zerolog.Nop())
	coords, err := l.Locate(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 47.6062, coords.Latitude, 1e-9)
	assert.InDelta(t, -122.3321, coords.Longitude, 1e-9)
}

func TestIPLocator_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"fail status", http.StatusOK, `{"status":"fail","message":"private range"}`},
		{"http error", http.StatusForbidden, `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewIPLocator(server.URL, time.Second, zerolog.Nop()).Locate(context.Background())
			assert.ErrorIs(t, err, ErrLookupFailed)
		})
	}
}

func TestLocateWithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	l := NewIPLocator(server.URL, 5*time.Second, zerolog.Nop())
	start := time.Now()
	_, err := LocateWithTimeout(context.Background(), l, 50*time.Millisecond)
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStaticAndDisabled(t *testing.T) {
	home := models.Coordinates{Latitude: 1.29, Longitude: 103.85}
	coords, err := StaticLocator{Coordinates: home}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, home, coords)

	_, err = Disabled{}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNew(t *testing.T) {
	l, err := New(Options{Mode: ModeStatic})
	require.NoError(t, err)
	assert.IsType(t, StaticLocator{}, l)

	l, err = New(Options{Mode: ModeOff})
	require.NoError(t, err)
	assert.IsType(t, Disabled{}, l)

	l, err = New(Options{})
	require.NoError(t, err)
	assert.IsType(t, &IPLocator{}, l)

	_, err = New(Options{Mode: "gps"})
	assert.Error(t, err)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"croprec/recommend"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSession(t *testing.T, service *recommend.Service) *websocket.Conn {
	t.Helper()
	return dialSessionQuery(t, service, "")
}

func dialSessionQuery(t *testing.T, service *recommend.Service, query string) *websocket.Conn {
	t.Helper()
	ts := httptest.NewServer(newTestServer(t, service))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if query != "" {
		url += "?" + query
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) (Message, recommend.View) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	var view recommend.View
	if msg.Type == "view" {
		require.NoError(t, json.Unmarshal(msg.Data, &view))
	}
	return msg, view
}

func TestWebSocketSession(t *testing.T) {
	fake := &fakeClassifier{label: "rice"}
	conn := dialSession(t, recommend.NewService(fake))

	msg, view := readMessage(t, conn)
	require.Equal(t, "view", msg.Type)
	assert.NotEmpty(t, msg.ID)
	assert.True(t, view.Ready)
	assert.Equal(t, "50", view.Echo[recommend.Nitrogen].Value)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "input", Field: "N", Value: "141"}))
	_, view = readMessage(t, conn)
	assert.Equal(t, "140", view.Echo[recommend.Nitrogen].Value)
	assert.Nil(t, view.Outcome)
	assert.Empty(t, fake.seen())

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "submit"}))
	_, view = readMessage(t, conn)
	require.NotNil(t, view.Outcome)
	assert.True(t, view.Outcome.Succeeded)
	assert.Equal(t, "The recommended crop is: Rice", view.Outcome.Message)
	assert.Equal(t, recommend.PhaseSucceeded, view.Phase)
	assert.Equal(t, [][]float64{{140, 50, 50, 25.0, 70.0, 6.5, 100.0}}, fake.seen())
}

func TestWebSocketInvalidInputKeepsValue(t *testing.T) {
	conn := dialSession(t, recommend.NewService(&fakeClassifier{label: "rice"}))
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "input", Field: "humidity", Value: "soggy"}))
	msg, view := readMessage(t, conn)
	assert.Equal(t, "view", msg.Type)
	assert.Equal(t, "70.0", view.Inputs[recommend.Humidity].Value)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "input", Field: "zinc", Value: "3"}))
	msg, _ = readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	msg, _ = readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
}

func TestWebSocketPredictionFailureRecovers(t *testing.T) {
	fake := &fakeClassifier{err: errors.New("bad shape")}
	conn := dialSession(t, recommend.NewService(fake))
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "submit"}))
	_, view := readMessage(t, conn)
	require.NotNil(t, view.Outcome)
	assert.False(t, view.Outcome.Succeeded)
	assert.Equal(t, "An error occurred during prediction: bad shape", view.Outcome.Message)

	fake.set("papaya", nil)
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "submit"}))
	_, view = readMessage(t, conn)
	require.NotNil(t, view.Outcome)
	assert.Equal(t, "The recommended crop is: Papaya", view.Outcome.Message)
}

func TestWebSocketWithoutClassifier(t *testing.T) {
	conn := dialSession(t, recommend.NewService(nil))

	_, view := readMessage(t, conn)
	assert.False(t, view.Ready)
	assert.Equal(t, recommend.NotLoadedWarning, view.Warning)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "submit"}))
	_, view = readMessage(t, conn)
	assert.Nil(t, view.Outcome)
}

func TestWebSocketSessionSeededFromQuery(t *testing.T) {
	fake := &fakeClassifier{label: "maize"}
	conn := dialSessionQuery(t, recommend.NewService(fake), "N=120&rainfall=250&ph=12&K=abc")

	msg, view := readMessage(t, conn)
	require.Equal(t, "view", msg.Type)
	assert.Equal(t, "120", view.Echo[recommend.Nitrogen].Value)
	assert.Equal(t, "250.0", view.Echo[recommend.Rainfall].Value)
	assert.Equal(t, "9.9", view.Echo[recommend.PH].Value)
	assert.Equal(t, "50", view.Echo[recommend.Potassium].Value)
	assert.Equal(t, "120", view.Inputs[recommend.Nitrogen].Value)
	assert.Nil(t, view.Outcome)
	assert.Empty(t, fake.seen())

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "submit"}))
	_, view = readMessage(t, conn)
	require.NotNil(t, view.Outcome)
	assert.Equal(t, "The recommended crop is: Maize", view.Outcome.Message)
	rows := fake.seen()
	require.Len(t, rows, 1)
	assert.Equal(t, []float64{120, 50, 50, 25, 70, 9.9, 250}, rows[0])
}

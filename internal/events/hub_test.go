package events

import (
	"bufio"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastJSONToTCPClient(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})

	hub.Add(server)
	assert.Equal(t, 1, hub.Stats().TCPClients)

	lines := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(client)
		if sc.Scan() {
			lines <- sc.Text()
		}
	}()

	ev := CatalogEvent{
		Type:      TypeTitleCreated,
		TitleID:   "t1",
		TitleName: "Shadow Realm Chronicles",
		Chapters:  2,
		At:        time.Now().UTC(),
	}
	go hub.BroadcastJSON(ev)

	select {
	case line := <-lines:
		var got CatalogEvent
		require.NoError(t, json.Unmarshal([]byte(line), &got))
		assert.Equal(t, TypeTitleCreated, got.Type)
		assert.Equal(t, "t1", got.TitleID)
		assert.Equal(t, 2, got.Chapters)
	case <-time.After(3 * time.Second):
		t.Fatal("no event received")
	}
}

func TestBroadcastDropsDeadClients(t *testing.T) {
	hub := NewHub()
	server, client := net.Pipe()
	hub.Add(server)
	require.NoError(t, client.Close())
	require.NoError(t, server.Close())

	hub.BroadcastJSON(CatalogEvent{Type: TypeChapterCreated})
	assert.Equal(t, 0, hub.Stats().TCPClients)
}

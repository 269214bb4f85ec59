package web

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/thelolagemann/go-z80/internal/bus"
	"github.com/thelolagemann/go-z80/internal/cpu"
)

func TestServer_BroadcastsSnapshots(t *testing.T) {
	s := NewServer(nil)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	defer s.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	c := cpu.NewCPU(bus.NewBus(), cpu.WithSeed(1))
	c.SetPC(0x1234)

	// the client registers asynchronously with the dial
	deadline := time.Now().Add(time.Second)
	for {
		s.mu.Lock()
		registered := len(s.clients)
		s.mu.Unlock()
		if registered > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.Broadcast(TakeSnapshot(c))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.PC != 0x1234 {
		t.Errorf("expected snapshot PC 1234, got %04X", snap.PC)
	}
	if snap.Checksum == 0 {
		t.Errorf("expected a non-zero checksum")
	}
}

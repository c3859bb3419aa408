package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscribed(h *Hub, role string, id uint) *Client {
	c := &Client{
		hub:        h,
		send:       make(chan []byte, 4),
		key:        subscriber{role: role, id: id},
		subscribed: true,
	}
	h.register <- c
	return c
}

func waitRegistered(t *testing.T, h *Hub, role string, id uint) {
	deadline := time.After(time.Second)
	for {
		h.mu.RLock()
		_, ok := h.clients[subscriber{role: role, id: id}]
		h.mu.RUnlock()
		if ok {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("subscriber %s %d never registered", role, id)
		case <-time.After(time.Millisecond):
		}
	}
}

func receive(t *testing.T, c *Client) map[string]any {
	select {
	case raw := <-c.send:
		var out map[string]any
		require.NoError(t, json.Unmarshal(raw, &out))
		return out
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return nil
	}
}

func TestAddressedDelivery(t *testing.T) {
	h := NewHub()
	go h.Run()

	customer := newSubscribed(h, RoleCustomer, 1)
	tech := newSubscribed(h, RoleTechnician, 1)
	other := newSubscribed(h, RoleTechnician, 2)
	waitRegistered(t, h, RoleCustomer, 1)
	waitRegistered(t, h, RoleTechnician, 1)
	waitRegistered(t, h, RoleTechnician, 2)

	// Customer 1 and technician 1 share an id but not a mailbox.
	assert.True(t, h.SendToCustomer(1, map[string]string{"type": "update"}))
	got := receive(t, customer)
	assert.Equal(t, "update", got["type"])

	select {
	case <-tech.send:
		t.Fatal("technician received a customer-addressed message")
	default:
	}

	assert.True(t, h.SendToTechnician(1, map[string]string{"type": "new_job"}))
	assert.Equal(t, "new_job", receive(t, tech)["type"])

	h.SendToTechnicians([]uint{1, 2}, map[string]string{"type": "new_job"})
	assert.Equal(t, "new_job", receive(t, tech)["type"])
	assert.Equal(t, "new_job", receive(t, other)["type"])
}

func TestSendToUnknownSubscriber(t *testing.T) {
	h := NewHub()
	go h.Run()

	assert.False(t, h.SendToCustomer(42, map[string]string{"type": "update"}))
}

func TestSendDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := &Client{
		hub:        h,
		send:       make(chan []byte, 1),
		key:        subscriber{role: RoleCustomer, id: 1},
		subscribed: true,
	}
	h.register <- c
	waitRegistered(t, h, RoleCustomer, 1)

	assert.True(t, h.SendToCustomer(1, map[string]string{"type": "update"}))
	assert.False(t, h.SendToCustomer(1, map[string]string{"type": "update"}))
}

func TestResubscribeReplacesConnection(t *testing.T) {
	h := NewHub()
	go h.Run()

	old := newSubscribed(h, RoleCustomer, 1)
	waitRegistered(t, h, RoleCustomer, 1)

	replacement := newSubscribed(h, RoleCustomer, 1)

	// The old connection's outbound channel is closed by the hub.
	select {
	case _, ok := <-old.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("old connection was not shut down")
	}

	require.True(t, h.SendToCustomer(1, map[string]string{"type": "update"}))
	assert.Equal(t, "update", receive(t, replacement)["type"])

	// A late unregister from the dead connection must not evict the
	// replacement.
	h.unregister <- old
	waitRegistered(t, h, RoleCustomer, 1)
	assert.True(t, h.SendToCustomer(1, map[string]string{"type": "update"}))
}

func TestResubscribeUnderNewIdentityDropsOldKey(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newSubscribed(h, RoleCustomer, 1)
	waitRegistered(t, h, RoleCustomer, 1)

	// Same connection switches identities.
	c.key = subscriber{role: RoleTechnician, id: 7}
	h.register <- c
	waitRegistered(t, h, RoleTechnician, 7)

	// The old address no longer reaches this connection.
	assert.False(t, h.SendToCustomer(1, map[string]string{"type": "update"}))

	require.True(t, h.SendToTechnician(7, map[string]string{"type": "new_job"}))
	assert.Equal(t, "new_job", receive(t, c)["type"])
}

func TestUnregisterRemovesSubscriber(t *testing.T) {
	h := NewHub()
	go h.Run()

	c := newSubscribed(h, RoleCustomer, 1)
	waitRegistered(t, h, RoleCustomer, 1)

	h.unregister <- c

	deadline := time.After(time.Second)
	for {
		if !h.SendToCustomer(1, map[string]string{"type": "update"}) {
			return
		}
		select {
		case <-deadline:
			t.Fatal("subscriber still registered after unregister")
		case <-time.After(time.Millisecond):
		}
	}
}

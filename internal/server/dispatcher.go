package server

import (
	"log"
	"strings"
	"sync"

	"github.com/chattyhq/chatty/internal/stats"
	"github.com/chattyhq/chatty/internal/types"
)

const (
	numConnectionsMetric    = "NumConnections"
	numJoinEventsMetric     = "NumJoinEvents"
	numLeaveEventsMetric    = "NumLeaveEvents"
	numBroadcastsMetric     = "NumMessagesBroadcast"
	numDeliveryFailedMetric = "NumDeliveryFailures"
)

// Dispatcher orchestrates live room membership and message fan-out. It owns
// the room registry and the set of connected clients; the ingress layer calls
// OnMessageCreated after a message has been durably persisted, and each
// client's read pump calls OnJoin/OnLeave/OnDisconnect.
//
// Join and leave never consult the persistence store: live membership is
// deliberately independent of durable chatroom participation.
type Dispatcher struct {
	log      *log.Logger
	registry *RoomRegistry
	stats    stats.StatsProvider

	clientsMu sync.Mutex
	clients   map[string]*Client
}

func NewDispatcher(logger *log.Logger, registry *RoomRegistry, sp stats.StatsProvider) *Dispatcher {
	sp.RegisterMetric(numConnectionsMetric)
	sp.RegisterMetric(numJoinEventsMetric)
	sp.RegisterMetric(numLeaveEventsMetric)
	sp.RegisterMetric(numBroadcastsMetric)
	sp.RegisterMetric(numDeliveryFailedMetric)

	return &Dispatcher{
		log:      logger,
		registry: registry,
		stats:    sp,
		clients:  make(map[string]*Client),
	}
}

func (d *Dispatcher) Registry() *RoomRegistry {
	return d.registry
}

// OnConnect registers a newly upgraded connection. The connection has no room
// memberships until it issues join events.
func (d *Dispatcher) OnConnect(c *Client) {
	d.clientsMu.Lock()
	d.clients[c.id] = c
	d.clientsMu.Unlock()

	d.log.Printf("client %q connected", c.id)
	d.stats.Incr(numConnectionsMetric)
}

// OnDisconnect removes the connection from every room it joined and
// deregisters it. Calling it again for the same id is a no-op.
func (d *Dispatcher) OnDisconnect(connId string) {
	d.clientsMu.Lock()
	c, ok := d.clients[connId]
	if ok {
		delete(d.clients, connId)
	}
	d.clientsMu.Unlock()

	if !ok {
		return
	}

	left := d.registry.DropConnection(connId)
	c.stopClient()

	d.log.Printf("client %q disconnected, left %d room(s)", connId, len(left))
	d.stats.Decr(numConnectionsMetric)
}

// OnJoin admits the connection to the room's broadcast set and acknowledges
// the issuer. The user and chatroom are not checked for existence against the
// store; a connection may join the live broadcast set of any room id.
func (d *Dispatcher) OnJoin(connId string, req *JoinRequest) {
	c := d.client(connId)
	if c == nil {
		return
	}

	if strings.TrimSpace(req.UserId) == "" || strings.TrimSpace(req.ChatroomId) == "" {
		d.queue(c, ErrMissingFields())
		return
	}

	d.registry.Join(connId, req.ChatroomId)
	d.log.Printf("client %q (user %q) joined chatroom %q", connId, req.UserId, req.ChatroomId)
	d.stats.Incr(numJoinEventsMetric)

	d.queue(c, JoinedAck(req.ChatroomId))
}

// OnLeave removes the connection from the room's broadcast set and
// acknowledges the issuer. Leaving a room the connection never joined still
// succeeds.
func (d *Dispatcher) OnLeave(connId string, req *LeaveRequest) {
	c := d.client(connId)
	if c == nil {
		return
	}

	if strings.TrimSpace(req.UserId) == "" || strings.TrimSpace(req.ChatroomId) == "" {
		d.queue(c, ErrMissingFields())
		return
	}

	d.registry.Leave(connId, req.ChatroomId)
	d.log.Printf("client %q (user %q) left chatroom %q", connId, req.UserId, req.ChatroomId)
	d.stats.Incr(numLeaveEventsMetric)

	d.queue(c, LeftAck(req.ChatroomId))
}

// OnMessageCreated fans a persisted message out to every connection currently
// joined to its chatroom. By contract the message is already valid and
// durably committed; delivery is best-effort and at-most-once per member, and
// a failure to one member never affects the others.
func (d *Dispatcher) OnMessageCreated(msg types.Message) {
	event := NewMessageEvent(msg)
	members := d.registry.Members(msg.ChatroomId)

	var failed int
	for _, connId := range members {
		c := d.client(connId)
		if c == nil || !c.queueMessage(event) {
			// connection gone or its queue is full; skip it
			d.log.Printf("message %q: delivery to client %q failed", msg.Id, connId)
			d.stats.Incr(numDeliveryFailedMetric)
			failed++
		}
	}

	d.log.Printf("message %q broadcast to chatroom %q: %d member(s), %d failed",
		msg.Id, msg.ChatroomId, len(members), failed)
	d.stats.Incr(numBroadcastsMetric)
}

// Shutdown stops every connected client's pumps.
func (d *Dispatcher) Shutdown() {
	d.clientsMu.Lock()
	clients := make([]*Client, 0, len(d.clients))
	for _, c := range d.clients {
		clients = append(clients, c)
	}
	d.clientsMu.Unlock()

	for _, c := range clients {
		c.stopClient()
	}
}

func (d *Dispatcher) client(connId string) *Client {
	d.clientsMu.Lock()
	defer d.clientsMu.Unlock()

	return d.clients[connId]
}

func (d *Dispatcher) queue(c *Client, msg *ServerMessage) {
	if !c.queueMessage(msg) {
		d.log.Printf("client %q: send queue full, dropping event", c.id)
	}
}

package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"
	"ground-control/internal/infra/httpserver"

	"github.com/gorilla/websocket"
)

const (
	_pingInterval  = 54 * time.Second
	_pongWait      = 60 * time.Second
	_writeWait     = 10 * time.Second
	_clientBacklog = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the console is served from another origin; CORS on the REST routes
	// covers the same set of hosts
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventStreamController fans every serial and procedure event out to the
// connected websocket clients. A client that cannot keep up is dropped
// rather than slowing down the broker.
type EventStreamController struct {
	broker        async.InternalBroker
	subscriptions map[async.BrokerTopicName]async.Subscription

	clients    map[*streamClient]struct{}
	clientsMux sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

type streamClient struct {
	conn  *websocket.Conn
	kinds map[dto.EnvelopeKind]bool
	send  chan dto.Envelope
	once  sync.Once
}

func (c *streamClient) wants(kind dto.EnvelopeKind) bool {
	return len(c.kinds) == 0 || c.kinds[kind]
}

func (c *streamClient) close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func NewEventStreamController(broker async.InternalBroker) *EventStreamController {
	ctx, cancel := context.WithCancel(context.Background())

	wsc := &EventStreamController{
		broker:        broker,
		subscriptions: make(map[async.BrokerTopicName]async.Subscription),
		clients:       make(map[*streamClient]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}

	for _, topic := range usecases.MissionTopics {
		sub, err := broker.Subscribe(topic)
		if err != nil {
			slog.Error("subscribing event stream", slog.String("topic", string(topic)), slog.Any("error", err))
			continue
		}
		wsc.subscriptions[topic] = sub
		wsc.wg.Add(1)
		go wsc.run(sub.Receiver)
	}

	return wsc
}

var _ httpserver.Controller = (*EventStreamController)(nil)

func (wsc *EventStreamController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/events", wsc.handleWebSocket())
}

// Clients may narrow the stream with repeated ?kind= parameters.
func (wsc *EventStreamController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kinds := make(map[dto.EnvelopeKind]bool)
		for _, kind := range r.URL.Query()["kind"] {
			if !dto.IsEnvelopeKind(kind) {
				httpserver.ReplyWithError(w, http.StatusBadRequest, "unknown event kind "+kind)
				return
			}
			kinds[dto.EnvelopeKind(kind)] = true
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.Any("error", err))
			return
		}

		client := &streamClient{
			conn:  conn,
			kinds: kinds,
			send:  make(chan dto.Envelope, _clientBacklog),
		}
		wsc.register(client)
		slog.Info("event stream client connected", slog.String("remote_addr", r.RemoteAddr))

		go wsc.writePump(client)
		go wsc.readPump(client)
	}
}

func (wsc *EventStreamController) register(client *streamClient) {
	wsc.clientsMux.Lock()
	defer wsc.clientsMux.Unlock()
	wsc.clients[client] = struct{}{}
}

func (wsc *EventStreamController) unregister(client *streamClient) {
	wsc.clientsMux.Lock()
	_, ok := wsc.clients[client]
	delete(wsc.clients, client)
	total := len(wsc.clients)
	wsc.clientsMux.Unlock()

	if ok {
		client.close()
		slog.Info("event stream client disconnected", slog.Int("total_clients", total))
	}
}

func (wsc *EventStreamController) ClientCount() int {
	wsc.clientsMux.RLock()
	defer wsc.clientsMux.RUnlock()
	return len(wsc.clients)
}

// readPump only services control frames; the stream is one-way.
func (wsc *EventStreamController) readPump(client *streamClient) {
	defer wsc.unregister(client)

	client.conn.SetReadLimit(512)
	client.conn.SetReadDeadline(time.Now().Add(_pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(_pongWait))
		return nil
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.Any("error", err))
			} else {
				slog.Debug("websocket connection closed", slog.Any("error", err))
			}
			return
		}
	}
}

func (wsc *EventStreamController) writePump(client *streamClient) {
	ticker := time.NewTicker(_pingInterval)
	defer func() {
		ticker.Stop()
		wsc.unregister(client)
	}()

	for {
		select {
		case <-wsc.ctx.Done():
			return
		case envelope, ok := <-client.send:
			if !ok {
				return
			}
			client.conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := client.conn.WriteJSON(envelope); err != nil {
				slog.Debug("writing to websocket client", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(_writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (wsc *EventStreamController) run(receiver <-chan async.BrokerMessage) {
	defer wsc.wg.Done()
	for {
		select {
		case <-wsc.ctx.Done():
			return
		case msg, ok := <-receiver:
			if !ok {
				return
			}
			envelope, ok := msg.Value.(dto.Envelope)
			if !ok {
				continue
			}
			wsc.broadcast(envelope)
		}
	}
}

func (wsc *EventStreamController) broadcast(envelope dto.Envelope) {
	var slow []*streamClient

	wsc.clientsMux.RLock()
	for client := range wsc.clients {
		if !client.wants(envelope.Kind) {
			continue
		}
		select {
		case client.send <- envelope:
		default:
			slow = append(slow, client)
		}
	}
	wsc.clientsMux.RUnlock()

	for _, client := range slow {
		slog.Warn("event stream client too slow, dropping", slog.String("remote_addr", client.conn.RemoteAddr().String()))
		wsc.unregister(client)
	}
}

func (wsc *EventStreamController) Shutdown() {
	wsc.once.Do(func() {
		slog.Info("shutting down event stream controller")
		wsc.cancel()

		for topic, sub := range wsc.subscriptions {
			if err := wsc.broker.Unsubscribe(topic, sub); err != nil {
				slog.Warn("unsubscribing event stream", slog.Any("error", err))
			}
		}
		wsc.wg.Wait()

		wsc.clientsMux.Lock()
		clients := wsc.clients
		wsc.clients = make(map[*streamClient]struct{})
		wsc.clientsMux.Unlock()
		for client := range clients {
			client.close()
		}
	})
}

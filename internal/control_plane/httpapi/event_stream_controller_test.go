package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"ground-control/internal/control_plane/httpapi"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	"ground-control/internal/infra/async"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("EventStreamController", func() {
	var (
		broker     *async.LocalBroker
		controller *httpapi.EventStreamController
		server     *httptest.Server
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		controller = httpapi.NewEventStreamController(broker)

		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)
	})

	AfterEach(func() {
		server.Close()
		controller.Shutdown()
		broker.Stop()
	})

	dial := func(query string) *websocket.Conn {
		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events" + query
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
		Eventually(controller.ClientCount).Should(BeNumerically(">=", 1))
		return conn
	}

	publish := func(topic async.BrokerTopicName, envelope dto.Envelope) {
		Expect(broker.Publish(context.Background(), topic, async.BrokerMessage{
			Event: string(envelope.Kind),
			Value: envelope,
		})).To(Succeed())
	}

	read := func(conn *websocket.Conn) dto.Envelope {
		var envelope dto.Envelope
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		Expect(conn.ReadJSON(&envelope)).To(Succeed())
		return envelope
	}

	It("should stream serial and procedure events in order", func() {
		conn := dial("")
		defer conn.Close()

		publish(usecases.BrokerTopicSerialEvents, dto.Envelope{ID: "1", Kind: dto.KindRawLine, Line: "10, 200, 450"})
		publish(usecases.BrokerTopicProcedureEvents, dto.Envelope{ID: "2", Kind: dto.KindStageTransition, Stage: "FIRE"})

		Expect(read(conn).ID).To(Equal("1"))
		Expect(read(conn).Stage).To(Equal("FIRE"))
	})

	It("should filter by kind", func() {
		conn := dial("?kind=launch")
		defer conn.Close()

		publish(usecases.BrokerTopicSerialEvents, dto.Envelope{ID: "1", Kind: dto.KindRawLine})
		publish(usecases.BrokerTopicProcedureEvents, dto.Envelope{ID: "2", Kind: dto.KindLaunch, Message: "BLASTOFF"})

		Expect(read(conn).Message).To(Equal("BLASTOFF"))
	})

	It("should reject an unknown kind before upgrading", func() {
		resp, err := http.Get(server.URL + "/ws/events?kind=weather")
		Expect(err).NotTo(HaveOccurred())
		defer resp.Body.Close()

		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("should forget clients that disconnect", func() {
		conn := dial("")
		Expect(conn.Close()).To(Succeed())

		Eventually(controller.ClientCount).Should(BeZero())
	})
})

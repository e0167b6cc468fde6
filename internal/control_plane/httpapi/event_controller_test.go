package httpapi_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"ground-control/internal/control_plane/httpapi"
	"ground-control/internal/control_plane/usecases"
	"ground-control/internal/data_plane/dto"
	mockusecases "ground-control/test/unit/doubles/control_plane/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("EventController", func() {
	var (
		ctrl        *gomock.Controller
		mockJournal *mockusecases.MockJournalService
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockJournal = mockusecases.NewMockJournalService(ctrl)
		router = http.NewServeMux()
		httpapi.NewEventController(mockJournal).AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Context("listEvents", func() {
		It("should page with default parameters", func() {
			mockJournal.EXPECT().
				Find(gomock.Any(), usecases.EventFilter{}, usecases.Pagination{Limit: 10, Offset: 0}).
				Return([]dto.Envelope{{ID: "evt-1", Kind: dto.KindRawLine, Line: "10, 20"}}, 1, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/events", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"total":1`))
			Expect(recorder.Body.String()).To(ContainSubstring(`"id":"evt-1"`))
		})

		It("should pass kind, since and page through", func() {
			since := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
			mockJournal.EXPECT().
				Find(gomock.Any(),
					usecases.EventFilter{Kind: dto.KindStageTransition, Since: since},
					usecases.Pagination{Limit: 5, Offset: 10}).
				Return(nil, 12, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET",
				"/v1/events?kind=stage_transition&since=2026-03-01T10:00:00Z&page=3&limit=5", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"data":[]`))
			Expect(recorder.Body.String()).To(ContainSubstring(`"total_pages":3`))
		})

		It("should reject an unknown kind", func() {
			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/events?kind=weather", nil))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject a malformed since", func() {
			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/events?since=yesterday", nil))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 500 when the journal fails", func() {
			mockJournal.EXPECT().Find(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("database down"))

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/events", nil))

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Context("getEvent", func() {
		It("should return a single event", func() {
			mockJournal.EXPECT().Get(gomock.Any(), "evt-7").Return(dto.Envelope{ID: "evt-7", Kind: dto.KindLaunch}, nil)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/events/evt-7", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"kind":"launch"`))
		})

		It("should answer 404 for an unknown id", func() {
			mockJournal.EXPECT().Get(gomock.Any(), "missing").Return(dto.Envelope{}, usecases.ErrEventNotFound)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/events/missing", nil))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})

var _ = Describe("TelemetryController", func() {
	var (
		ctrl          *gomock.Controller
		mockTelemetry *mockusecases.MockTelemetryService
		router        *http.ServeMux
		recorder      *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockTelemetry = mockusecases.NewMockTelemetryService(ctrl)
		router = http.NewServeMux()
		httpapi.NewTelemetryController(mockTelemetry).AddRoutes(router)
		recorder = httptest.NewRecorder()
	})

	It("should return the latest snapshot", func() {
		mockTelemetry.EXPECT().Snapshot(gomock.Any()).Return(usecases.TelemetrySnapshot{
			Valves:    map[int]bool{3: true},
			Pressures: map[int]dto.PressureReading{1: {Sensor: 1, Value: 450, Band: dto.BandUnsafe}},
			LastLine:  "450",
		}, nil)

		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/telemetry", nil))

		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Body.String()).To(ContainSubstring(`"band":"UNSAFE"`))
		Expect(recorder.Body.String()).To(ContainSubstring(`"3":true`))
	})

	It("should answer 500 when the store fails", func() {
		mockTelemetry.EXPECT().Snapshot(gomock.Any()).Return(usecases.TelemetrySnapshot{}, errors.New("cache down"))

		router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/telemetry", nil))

		Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
	})
})

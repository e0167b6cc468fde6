package httpapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"ground-control/internal/control_plane/domain"
	"ground-control/internal/control_plane/httpapi"
	"ground-control/internal/control_plane/httpapi/internal"
	"ground-control/internal/control_plane/usecases"
	mockusecases "ground-control/test/unit/doubles/control_plane/usecases"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("ProcedureController", func() {
	var (
		ctrl        *gomock.Controller
		mockService *mockusecases.MockMissionService
		router      *http.ServeMux
		recorder    *httptest.ResponseRecorder
		snapshot    domain.ProcedureSnapshot
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockService = mockusecases.NewMockMissionService(ctrl)
		router = http.NewServeMux()
		httpapi.NewProcedureController(mockService).AddRoutes(router)
		recorder = httptest.NewRecorder()

		snapshot = domain.ProcedureSnapshot{
			Current: "PREP",
			Gate:    "PREP",
			Stages: []domain.Stage{
				{ID: "PREP", Title: "Preparation", Tasks: []domain.Task{
					{ID: "VENT", Description: "Vent lines", Prompt: "Lines vented?", Complete: true},
				}},
				{ID: "FIRE", Title: "Fire", Tasks: []domain.Task{
					{ID: "ARM", Description: "Arm igniter", Prompt: "Igniter armed?"},
				}},
			},
		}
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	decode := func(target any) {
		Expect(json.Unmarshal(recorder.Body.Bytes(), target)).To(Succeed())
	}

	Context("getProcedure", func() {
		It("should describe every stage with completion", func() {
			mockService.EXPECT().Procedure().Return(snapshot)

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/procedure", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body internal.ProcedureResponse
			decode(&body)
			Expect(body.Current).To(Equal("PREP"))
			Expect(body.Stages).To(HaveLen(2))
			Expect(body.Stages[0].Complete).To(BeTrue())
			Expect(body.Stages[1].Complete).To(BeFalse())
			Expect(body.Stages[1].Tasks[0].Prompt).To(Equal("Igniter armed?"))
		})
	})

	Context("nextPendingTask", func() {
		It("should return the pending task with its prompt", func() {
			task := snapshot.Stages[1].Tasks[0]
			mockService.EXPECT().NextPendingTask().Return(usecases.PendingTask{
				Stage:   "FIRE",
				Task:    &task,
				Message: "Igniter armed?",
			})

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/procedure/next-task", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body internal.PendingTaskResponse
			decode(&body)
			Expect(body.Task).NotTo(BeNil())
			Expect(body.Task.ID).To(Equal("ARM"))
		})

		It("should omit the task when the stage is complete", func() {
			mockService.EXPECT().NextPendingTask().Return(usecases.PendingTask{
				Stage:   "PREP",
				Message: "All tasks complete",
			})

			router.ServeHTTP(recorder, httptest.NewRequest("GET", "/v1/procedure/next-task", nil))

			Expect(recorder.Body.String()).NotTo(ContainSubstring(`"task"`))
		})
	})

	Context("transitions", func() {
		It("should answer an accepted advance with 200", func() {
			mockService.EXPECT().AdvanceStage(gomock.Any()).Return(domain.Transition{
				Kind: domain.TransitionAdvance, From: "PREP", To: "FIRE",
			})

			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/procedure/advance", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body internal.TransitionResponse
			decode(&body)
			Expect(body.Accepted).To(BeTrue())
			Expect(body.To).To(Equal("FIRE"))
		})

		It("should answer a rejected advance with 409 and the reason", func() {
			mockService.EXPECT().AdvanceStage(gomock.Any()).Return(domain.Transition{
				Kind: domain.TransitionAdvance, From: "FIRE", To: "FIRE",
				Err: fmt.Errorf("%w: ARM", domain.ErrTasksIncomplete),
			})

			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/procedure/advance", nil))

			Expect(recorder.Code).To(Equal(http.StatusConflict))
			var body internal.TransitionResponse
			decode(&body)
			Expect(body.Accepted).To(BeFalse())
			Expect(body.Reason).To(ContainSubstring("incomplete tasks"))
		})

		It("should route regress and abort", func() {
			mockService.EXPECT().RegressStage(gomock.Any()).Return(domain.Transition{
				Kind: domain.TransitionRegress, From: "PREP", To: "PREP", Err: domain.ErrFirstStage,
			})
			mockService.EXPECT().Abort(gomock.Any()).Return(domain.Transition{
				Kind: domain.TransitionAbort, From: "PREP", To: domain.StageAborted,
			})

			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/procedure/regress", nil))
			Expect(recorder.Code).To(Equal(http.StatusConflict))

			recorder = httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/procedure/abort", nil))
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(ContainSubstring(`"to":"ABORTED"`))
		})
	})

	Context("markTask", func() {
		It("should mark a task complete", func() {
			mockService.EXPECT().MarkTask(gomock.Any(), domain.TaskID("ARM"), true).Return(nil)
			mockService.EXPECT().Procedure().Return(snapshot)

			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/procedure/tasks/ARM/complete", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("should clear a task", func() {
			mockService.EXPECT().MarkTask(gomock.Any(), domain.TaskID("VENT"), false).Return(nil)
			mockService.EXPECT().Procedure().Return(snapshot)

			router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/v1/procedure/tasks/VENT/complete", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
		})

		It("should answer 404 for a task outside the current stage", func() {
			mockService.EXPECT().MarkTask(gomock.Any(), domain.TaskID("NOPE"), true).
				Return(fmt.Errorf("%w: NOPE", domain.ErrUnknownTask))

			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/procedure/tasks/NOPE/complete", nil))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should answer 409 once aborted", func() {
			mockService.EXPECT().MarkTask(gomock.Any(), domain.TaskID("ARM"), true).Return(domain.ErrAborted)

			router.ServeHTTP(recorder, httptest.NewRequest("POST", "/v1/procedure/tasks/ARM/complete", nil))

			Expect(recorder.Code).To(Equal(http.StatusConflict))
		})
	})
})

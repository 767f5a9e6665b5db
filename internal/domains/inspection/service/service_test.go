package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	otelMocks "hotelier/infras/otel/mocks"
	postgresMocks "hotelier/infras/postgres/mocks"
	activityMocks "hotelier/internal/domains/activity/mocks"
	bookingMocks "hotelier/internal/domains/booking/mocks"
	bookingModel "hotelier/internal/domains/booking/model"
	inspectionMocks "hotelier/internal/domains/inspection/mocks"
	"hotelier/internal/domains/inspection/model"
	"hotelier/internal/domains/inspection/model/dto"
	"hotelier/internal/domains/inspection/service"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
)

func newInspectionService(ctrl *gomock.Controller) (
	service.Inspection,
	*inspectionMocks.MockInspection,
	*bookingMocks.MockBookingRoom,
	*activityMocks.MockRecorderService,
) {
	mockRepo := inspectionMocks.NewMockInspection(ctrl)
	mockBookingRoomRepo := bookingMocks.NewMockBookingRoom(ctrl)
	mockActivity := activityMocks.NewMockRecorderService(ctrl)

	svc := service.New(mockRepo, mockBookingRoomRepo, mockActivity,
		postgresMocks.NewTransactor(), otelMocks.NewOtel())

	return svc, mockRepo, mockBookingRoomRepo, mockActivity
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyActorID, "test-user-id")
}

func TestInspectionService_Create(t *testing.T) {
	pendingRoom := bookingModel.BookingRoom{
		ID:        "br-1",
		BookingID: "booking-1",
		State:     bookingModel.StateInspectionPending,
	}

	req := dto.CreateInspectionRequest{
		BookingRoomID: "br-1",
		HasDamages:    true,
		DamageAmount:  250000,
		Notes:         "broken lamp",
	}

	tests := []struct {
		name      string
		setupMock func(repo *inspectionMocks.MockInspection, roomRepo *bookingMocks.MockBookingRoom, activity *activityMocks.MockRecorderService)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *inspectionMocks.MockInspection, roomRepo *bookingMocks.MockBookingRoom, activity *activityMocks.MockRecorderService) {
				roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pendingRoom, true, nil)
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				repo.EXPECT().
					InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
				activity.EXPECT().
					RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "room not awaiting inspection",
			setupMock: func(repo *inspectionMocks.MockInspection, roomRepo *bookingMocks.MockBookingRoom, activity *activityMocks.MockRecorderService) {
				inStay := pendingRoom
				inStay.State = bookingModel.StateInStay

				roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(inStay, true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "duplicate inspection",
			setupMock: func(repo *inspectionMocks.MockInspection, roomRepo *bookingMocks.MockBookingRoom, activity *activityMocks.MockRecorderService) {
				roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pendingRoom, true, nil)
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "booking room not found",
			setupMock: func(repo *inspectionMocks.MockInspection, roomRepo *bookingMocks.MockBookingRoom, activity *activityMocks.MockRecorderService) {
				roomRepo.EXPECT().
					GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(bookingModel.BookingRoom{}, false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo, mockBookingRoomRepo, mockActivity := newInspectionService(ctrl)
			tt.setupMock(mockRepo, mockBookingRoomRepo, mockActivity)

			res, err := svc.Create(testContext(), req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "br-1", res.BookingRoomID)
			assert.False(t, res.IsApproved)
		})
	}
}

func TestInspectionService_Approve(t *testing.T) {
	pendingInspection := model.Inspection{
		ID:            "insp-1",
		BookingRoomID: "br-1",
		HasDamages:    true,
		DamageAmount:  250000,
	}

	pendingRoom := bookingModel.BookingRoom{
		ID:        "br-1",
		BookingID: "booking-1",
		State:     bookingModel.StateInspectionPending,
	}

	t.Run("approval advances the room to inspected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockBookingRoomRepo, mockActivity := newInspectionService(ctrl)

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pendingInspection, true, nil)
		mockBookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pendingRoom, true, nil)
		mockRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		var roomUpdate map[string]any

		mockBookingRoomRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, req map[string]any, _ any) error {
				roomUpdate = req

				return nil
			})
		mockActivity.EXPECT().
			RecordTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Approve(testContext(), "insp-1")

		assert.NoError(t, err)
		assert.True(t, res.IsApproved)
		assert.Equal(t, bookingModel.StateInspected, roomUpdate[bookingModel.FieldState])
	})

	t.Run("already approved conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, _ := newInspectionService(ctrl)

		approved := pendingInspection
		approved.IsApproved = true

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(approved, true, nil)

		_, err := svc.Approve(testContext(), "insp-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("room no longer pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, mockBookingRoomRepo, _ := newInspectionService(ctrl)

		checkedOut := pendingRoom
		checkedOut.State = bookingModel.StateCheckedOut

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pendingInspection, true, nil)
		mockBookingRoomRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(checkedOut, true, nil)

		_, err := svc.Approve(testContext(), "insp-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("inspection not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockRepo, _, _ := newInspectionService(ctrl)

		mockRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Inspection{}, false, nil)

		_, err := svc.Approve(testContext(), "insp-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestInspectionService_GetByBookingRoom(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, _, _ := newInspectionService(ctrl)

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Inspection{ID: "insp-1", BookingRoomID: "br-1", HasDamages: true, DamageAmount: 100000}, nil)

		res, err := svc.GetByBookingRoom(testContext(), "br-1")

		assert.NoError(t, err)
		assert.Equal(t, "insp-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Inspection{}, nil)

		_, err := svc.GetByBookingRoom(testContext(), "br-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

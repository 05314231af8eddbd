//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"resort-booking/internal/domain/user"
	"resort-booking/internal/handler/api"
	resdto "resort-booking/internal/handler/dto/response"
	"resort-booking/internal/usecase/commands"
	"resort-booking/internal/usecase/queries"
	"resort-booking/tests/common/builder"
	"resort-booking/tests/common/httptest"
	"resort-booking/tests/common/testutil"
	commandsmock "resort-booking/tests/mock/commands"
	queriesmock "resort-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	guestID      uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.guestID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.guestID)
		c.Set("user_role", user.RoleGuest)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListOwnBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// staffRouter registers a transition route behind a staff-role middleware.
func (s *BookingHandlerTestSuite) staffRouter(method, path string, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	staffMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleStaff)
		c.Next()
	}
	router.Handle(method, path, staffMiddleware, handler)
	return router
}

func idempotencyHeader() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

// ================================================================================
// TestCreateBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewBookingBuilder().BuildView()

	s.Run("success: returns 201 Created for a new booking", func() {
		s.mockCommands.EXPECT().RequestBooking(gomock.Any(), gomock.Any(), s.guestID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: returnView, IsReplayed: false}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(), "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("pending", response.Status)
		s.Equal(returnView.TotalCents, response.TotalCents)
	})

	s.Run("success: returns 200 OK for an idempotent replay", func() {
		s.mockCommands.EXPECT().RequestBooking(gomock.Any(), gomock.Any(), s.guestID, gomock.Any()).
			Return(&commands.CreateBookingResult{Booking: returnView, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(), "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: 400 Bad Request without Idempotency-Key header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 400 Bad Request for malformed Idempotency-Key", func() {
		headers := map[string]string{"Idempotency-Key": "not-a-uuid"}
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, headers, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: room_id", mutate: testutil.Field("room_id", nil)},
			{name: "missing field: check_in", mutate: testutil.Field("check_in", nil)},
			{name: "missing field: check_out", mutate: testutil.Field("check_out", nil)},
			{name: "missing field: guest_count", mutate: testutil.Field("guest_count", nil)},
			{name: "guest_count below minimum", mutate: testutil.Field("guest_count", 0)},
			{name: "check_in not a date", mutate: testutil.Field("check_in", "yesterday")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, idempotencyHeader(), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "room not found",
				commandsError:  commands.ErrRoomNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Room not found",
			},
			{
				name:           "invalid stay period",
				commandsError:  commands.ErrInvalidStayPeriod,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Check-out must be after check-in",
			},
			{
				name:           "guest count over capacity",
				commandsError:  commands.ErrRoomOverCapacity,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "capacity",
			},
			{
				name:           "no availability",
				commandsError:  commands.ErrNoAvailability,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "No units available",
			},
			{
				name:           "duplicate request with different payload",
				commandsError:  commands.ErrDuplicateBooking,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Duplicate",
			},
			{
				name:           "request still in progress",
				commandsError:  commands.ErrIdempotencyInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "being processed",
			},
			{
				name:           "domain validation error",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Invalid booking data",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RequestBooking(gomock.Any(), gomock.Any(), s.guestID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, idempotencyHeader(), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().BuildView()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.guestID, user.RoleGuest, bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.RoomName, response.RoomName)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.guestID, user.RoleGuest, bookingID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 Forbidden for another guest's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.guestID, user.RoleGuest, bookingID).
			Return(nil, queries.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestListOwnBookings
// ================================================================================

func (s *BookingHandlerTestSuite) TestListOwnBookings() {
	url := "/bookings"

	items := []*queries.BookingListItem{
		builder.NewBookingBuilder().BuildListItem(),
		builder.NewBookingBuilder().BuildListItem(),
	}

	s.Run("success: returns own bookings", func() {
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.guestID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, len(items))
	})

	s.Run("success: empty list for guest without bookings", func() {
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.guestID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListByGuest(gomock.Any(), s.guestID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestCancelBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.guestID, user.RoleGuest).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/invalid-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "not the booking owner",
				commandsError:  commands.ErrNotBookingOwner,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Insufficient permissions",
			},
			{
				name:           "already in a terminal state",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "does not allow this transition",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, s.guestID, user.RoleGuest).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// Admin transitions and payment settlement
// ================================================================================

func (s *BookingHandlerTestSuite) TestAdminTransitions() {
	bookingID := uuid.New()

	s.Run("approve returns 204", func() {
		router := s.staffRouter(http.MethodPost, "/admin/bookings/:id/approve", s.handler.ApproveBooking)
		s.mockCommands.EXPECT().ApproveBooking(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/admin/bookings/"+bookingID.String()+"/approve", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("decline returns 204", func() {
		router := s.staffRouter(http.MethodPost, "/admin/bookings/:id/decline", s.handler.DeclineBooking)
		s.mockCommands.EXPECT().DeclineBooking(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/admin/bookings/"+bookingID.String()+"/decline", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("complete returns 204", func() {
		router := s.staffRouter(http.MethodPost, "/admin/bookings/:id/complete", s.handler.CompleteBooking)
		s.mockCommands.EXPECT().CompleteBooking(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/admin/bookings/"+bookingID.String()+"/complete", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("approve on a confirmed booking returns 409", func() {
		router := s.staffRouter(http.MethodPost, "/admin/bookings/:id/approve", s.handler.ApproveBooking)
		s.mockCommands.EXPECT().ApproveBooking(gomock.Any(), bookingID).
			Return(commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/admin/bookings/"+bookingID.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "does not allow this transition")
	})

	s.Run("approve on a missing booking returns 404", func() {
		router := s.staffRouter(http.MethodPost, "/admin/bookings/:id/approve", s.handler.ApproveBooking)
		s.mockCommands.EXPECT().ApproveBooking(gomock.Any(), bookingID).
			Return(commands.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/admin/bookings/"+bookingID.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("list pending bookings", func() {
		router := s.staffRouter(http.MethodGet, "/admin/bookings/pending", s.handler.ListPendingBookings)
		items := []*queries.BookingListItem{builder.NewBookingBuilder().BuildListItem()}
		s.mockQueries.EXPECT().ListPending(gomock.Any()).Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, "/admin/bookings/pending", nil, "bearer-token")

		var response []*resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}

func (s *BookingHandlerTestSuite) TestPaymentEndpoints() {
	bookingID := uuid.New()

	s.Run("confirm payment returns 204", func() {
		router := s.staffRouter(http.MethodPost, "/payments/:id/confirm", s.handler.ConfirmPayment)
		s.mockCommands.EXPECT().MarkPaid(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/payments/"+bookingID.String()+"/confirm", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("fail payment returns 204", func() {
		router := s.staffRouter(http.MethodPost, "/payments/:id/fail", s.handler.FailPayment)
		s.mockCommands.EXPECT().MarkPaymentFailed(gomock.Any(), bookingID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/payments/"+bookingID.String()+"/fail", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("confirm before approval returns 409", func() {
		router := s.staffRouter(http.MethodPost, "/payments/:id/confirm", s.handler.ConfirmPayment)
		s.mockCommands.EXPECT().MarkPaid(gomock.Any(), bookingID).
			Return(commands.ErrInvalidTransition).Times(1)

		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/payments/"+bookingID.String()+"/confirm", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "does not allow this transition")
	})
}

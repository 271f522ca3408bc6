package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	settlementhttp "settlement/internal/adapters/in/http"
	"settlement/internal/core/application/usecases/commands"
	"settlement/internal/core/application/usecases/queries"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/pricing"
	"settlement/internal/core/domain/model/violation"
	"settlement/internal/core/domain/model/withdrawal"
	"settlement/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

var testSecret = []byte("test-secret")

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Pagination *struct {
		Total int64 `json:"total"`
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
	} `json:"pagination"`
	Errors []settlementhttp.FieldError `json:"errors"`
}

type ServerTestSuite struct {
	suite.Suite
	doc      *openapi3.T
	driverID kernel.UUID
	adminID  kernel.UUID
	customer kernel.UUID
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupSuite() {
	doc, err := settlementhttp.LoadDocument(context.Background())
	s.Require().NoError(err)
	s.Require().NoError(settlementhttp.RegisterSwagger(doc))
	s.doc = doc
}

func (s *ServerTestSuite) SetupTest() {
	s.driverID = kernel.NewUUID()
	s.adminID = kernel.NewUUID()
	s.customer = kernel.NewUUID()
}

func (s *ServerTestSuite) newEcho(h settlementhttp.Handlers) *echo.Echo {
	calculator, err := pricing.NewCalculator(pricing.DefaultConfig())
	s.Require().NoError(err)
	return settlementhttp.NewEcho(settlementhttp.NewServer(h, calculator), settlementhttp.Options{
		JWTSecret: testSecret,
		Document:  s.doc,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func (s *ServerTestSuite) token(userID kernel.UUID, role string) string {
	token, err := settlementhttp.IssueToken(testSecret, userID, role, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *ServerTestSuite) do(e *echo.Echo, method, target, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *ServerTestSuite) decode(raw json.RawMessage) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(raw, &out))
	return out
}

func (s *ServerTestSuite) newWithdrawal(amount kernel.Money) *withdrawal.Withdrawal {
	w, err := withdrawal.NewWithdrawal(kernel.NewUUID(), withdrawal.Request{
		DriverID:        s.driverID,
		RequestedAmount: amount,
		Account: withdrawal.BankAccount{
			AccountName:   "Nguyen Van A",
			AccountNumber: "0123456789",
			BankName:      "Vietcombank",
		},
		ConfirmedAccountNumber: "0123456789",
	}, 5_000_000, withdrawal.DefaultFeePolicy(), time.Now().UTC())
	s.Require().NoError(err)
	return w
}

func withdrawalBody() map[string]any {
	return map[string]any{
		"requestedAmount":        1_000_000,
		"bankAccountName":        "Nguyen Van A",
		"bankAccountNumber":      "0123456789",
		"confirmedAccountNumber": "0123456789",
		"bankName":               "Vietcombank",
	}
}

func (s *ServerTestSuite) TestHealth() {
	e := s.newEcho(settlementhttp.Handlers{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerTestSuite) TestMissingTokenIsUnauthorized() {
	e := s.newEcho(settlementhttp.Handlers{})

	rec, env := s.do(e, http.MethodGet, "/api/driver/withdrawal/history", "", nil)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.False(env.Success)
	s.NotEmpty(env.Message)
}

func (s *ServerTestSuite) TestExpiredTokenIsUnauthorized() {
	e := s.newEcho(settlementhttp.Handlers{})
	token, err := settlementhttp.IssueToken(testSecret, s.driverID, settlementhttp.RoleDriver, -time.Minute)
	s.Require().NoError(err)

	rec, _ := s.do(e, http.MethodGet, "/api/driver/withdrawal/history", token, nil)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestDriverCannotCallAdminRoutes() {
	e := s.newEcho(settlementhttp.Handlers{})

	rec, env := s.do(e, http.MethodGet, "/api/admin/withdrawals", s.token(s.driverID, settlementhttp.RoleDriver), nil)

	s.Equal(http.StatusForbidden, rec.Code)
	s.False(env.Success)
}

func (s *ServerTestSuite) TestQuotePrice() {
	e := s.newEcho(settlementhttp.Handlers{})

	rec, env := s.do(e, http.MethodPost, "/api/pricing/quote", s.token(s.customer, settlementhttp.RoleCustomer),
		map[string]any{
			"vehicleType":    "Truck",
			"weightKg":       2000,
			"distanceKm":     10,
			"loadingService": true,
			"insurance":      true,
			"insuranceFee":   100000,
		})

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.True(env.Success)
	data := s.decode(env.Data)
	s.InDelta(60000, data["basePerKm"], 0)
	s.InDelta(600000, data["distanceCost"], 0)
	s.InDelta(50000, data["loadCost"], 0)
	s.InDelta(100000, data["insuranceFee"], 0)
	s.InDelta(750000, data["total"], 0)
}

func (s *ServerTestSuite) TestQuotePriceRejectsZeroWeight() {
	e := s.newEcho(settlementhttp.Handlers{})

	rec, env := s.do(e, http.MethodPost, "/api/pricing/quote", s.token(s.customer, settlementhttp.RoleCustomer),
		map[string]any{"vehicleType": "Van", "weightKg": 0, "distanceKm": 5})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Success)
	s.NotEmpty(env.Errors)
}

func (s *ServerTestSuite) TestQuotePricePickup() {
	e := s.newEcho(settlementhttp.Handlers{})

	rec, env := s.do(e, http.MethodPost, "/api/pricing/quote", s.token(s.customer, settlementhttp.RoleCustomer),
		map[string]any{"vehicleType": "Pickup", "weightKg": 2000, "distanceKm": 10})

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	data := s.decode(env.Data)
	s.InDelta(60000, data["basePerKm"], 0)
	s.InDelta(600000, data["total"], 0)
}

func (s *ServerTestSuite) TestQuotePriceRejectsUnboundedDistance() {
	e := s.newEcho(settlementhttp.Handlers{})

	rec, env := s.do(e, http.MethodPost, "/api/pricing/quote", s.token(s.customer, settlementhttp.RoleCustomer),
		map[string]any{"vehicleType": "Truck", "weightKg": 2000, "distanceKm": 2e14})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Success)
}

func (s *ServerTestSuite) TestRequestWithdrawal() {
	requested := s.newWithdrawal(1_000_000)
	handler := &HandlerMock[commands.RequestWithdrawalCommand, *withdrawal.Withdrawal]{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RequestWithdrawalCommand) bool {
		req := cmd.Request()
		return req.DriverID.IsEqual(s.driverID) &&
			req.RequestedAmount == 1_000_000 &&
			req.ConfirmedAccountNumber == "0123456789"
	})).Return(requested, nil).Once()
	e := s.newEcho(settlementhttp.Handlers{RequestWithdrawal: handler})

	rec, env := s.do(e, http.MethodPost, "/api/driver/withdrawal/request",
		s.token(s.driverID, settlementhttp.RoleDriver), withdrawalBody())

	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.True(env.Success)
	data := s.decode(env.Data)
	s.InDelta(1_000_000, data["requestedAmount"], 0)
	s.InDelta(800_000, data["actualAmount"], 0)
	s.InDelta(200_000, data["systemFee"], 0)
	s.Equal("Pending", data["status"])
	handler.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestRequestWithdrawalMissingBankName() {
	handler := &HandlerMock[commands.RequestWithdrawalCommand, *withdrawal.Withdrawal]{}
	e := s.newEcho(settlementhttp.Handlers{RequestWithdrawal: handler})
	body := withdrawalBody()
	delete(body, "bankName")

	rec, env := s.do(e, http.MethodPost, "/api/driver/withdrawal/request",
		s.token(s.driverID, settlementhttp.RoleDriver), body)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Success)
	handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestRequestWithdrawalAccountMismatch() {
	handler := &HandlerMock[commands.RequestWithdrawalCommand, *withdrawal.Withdrawal]{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.Join(
		errs.NewValueIsInvalidErrorWithCause("confirmedAccountNumber", errors.New("does not match bankAccountNumber")),
	)).Once()
	e := s.newEcho(settlementhttp.Handlers{RequestWithdrawal: handler})
	body := withdrawalBody()
	body["confirmedAccountNumber"] = "9999999999"

	rec, env := s.do(e, http.MethodPost, "/api/driver/withdrawal/request",
		s.token(s.driverID, settlementhttp.RoleDriver), body)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Require().Len(env.Errors, 1)
	s.Equal("confirmedAccountNumber", env.Errors[0].Field)
	s.Equal("does not match bankAccountNumber", env.Errors[0].Message)
}

func (s *ServerTestSuite) TestRequestWithdrawalInsufficientBalance() {
	handler := &HandlerMock[commands.RequestWithdrawalCommand, *withdrawal.Withdrawal]{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewInsufficientBalanceError(s.driverID.String(), 500_000, 1_000_000)).Once()
	e := s.newEcho(settlementhttp.Handlers{RequestWithdrawal: handler})

	rec, env := s.do(e, http.MethodPost, "/api/driver/withdrawal/request",
		s.token(s.driverID, settlementhttp.RoleDriver), withdrawalBody())

	s.Equal(http.StatusPaymentRequired, rec.Code)
	s.False(env.Success)
	s.Contains(env.Message, "available 500000")
}

func (s *ServerTestSuite) TestWithdrawalHistoryIsPaginated() {
	view := queries.WithdrawalView{
		ID:              kernel.NewUUID(),
		DriverID:        s.driverID,
		RequestedAmount: 1_000_000,
		ActualAmount:    800_000,
		SystemFee:       200_000,
		Status:          withdrawal.Pending.String(),
		CreatedAt:       time.Now().UTC(),
	}
	handler := &HandlerMock[queries.GetDriverWithdrawalsQuery, queries.Page[queries.WithdrawalView]]{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDriverWithdrawalsQuery) bool {
		return q.DriverID().IsEqual(s.driverID) && q.Pagination().Page == 2 && q.Pagination().Limit == 1
	})).Return(queries.Page[queries.WithdrawalView]{
		Items: []queries.WithdrawalView{view},
		Total: 3,
		Page:  2,
		Limit: 1,
	}, nil).Once()
	e := s.newEcho(settlementhttp.Handlers{GetDriverWithdrawals: handler})

	rec, env := s.do(e, http.MethodGet, "/api/driver/withdrawal/history?page=2&limit=1",
		s.token(s.driverID, settlementhttp.RoleDriver), nil)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().NotNil(env.Pagination)
	s.Equal(int64(3), env.Pagination.Total)
	s.Equal(2, env.Pagination.Page)
	s.Equal(1, env.Pagination.Limit)
	var items []queries.WithdrawalView
	s.Require().NoError(json.Unmarshal(env.Data, &items))
	s.Require().Len(items, 1)
	s.True(items[0].ID.IsEqual(view.ID))
}

func (s *ServerTestSuite) TestWithdrawalHistoryRejectsHugePage() {
	handler := &HandlerMock[queries.GetDriverWithdrawalsQuery, queries.Page[queries.WithdrawalView]]{}
	e := s.newEcho(settlementhttp.Handlers{GetDriverWithdrawals: handler})

	rec, _ := s.do(e, http.MethodGet, "/api/driver/withdrawal/history?page=9223372036854775807&limit=100",
		s.token(s.driverID, settlementhttp.RoleDriver), nil)

	s.Equal(http.StatusBadRequest, rec.Code)
	handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestGetDriverWithdrawalNotFound() {
	id := kernel.NewUUID()
	handler := &HandlerMock[queries.GetWithdrawalQuery, queries.WithdrawalView]{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(queries.WithdrawalView{}, errs.NewObjectNotFoundError("withdrawal", id.String())).Once()
	e := s.newEcho(settlementhttp.Handlers{GetWithdrawal: handler})

	rec, env := s.do(e, http.MethodGet, "/api/driver/withdrawal/"+id.String(),
		s.token(s.driverID, settlementhttp.RoleDriver), nil)

	s.Equal(http.StatusNotFound, rec.Code)
	s.False(env.Success)
}

func (s *ServerTestSuite) TestMalformedPathIDIsRejected() {
	handler := &HandlerMock[queries.GetWithdrawalQuery, queries.WithdrawalView]{}
	e := s.newEcho(settlementhttp.Handlers{GetWithdrawal: handler})

	rec, _ := s.do(e, http.MethodGet, "/api/admin/withdrawals/not-a-uuid",
		s.token(s.adminID, settlementhttp.RoleAdmin), nil)

	s.Equal(http.StatusBadRequest, rec.Code)
	handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestCompleteWithdrawal() {
	w := s.newWithdrawal(1_000_000)
	now := time.Now().UTC()
	s.Require().NoError(w.Approve(s.adminID, "", now))
	s.Require().NoError(w.Complete(s.adminID, "paid", now))

	handler := &HandlerMock[commands.ReviewWithdrawalCommand, *withdrawal.Withdrawal]{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReviewWithdrawalCommand) bool {
		return cmd.Decision() == commands.Complete && cmd.WithdrawalID().IsEqual(w.ID()) &&
			cmd.AdminID().IsEqual(s.adminID) && cmd.Note() == "paid"
	})).Return(w, nil).Once()
	e := s.newEcho(settlementhttp.Handlers{ReviewWithdrawal: handler})

	rec, env := s.do(e, http.MethodPut, "/api/admin/withdrawals/"+w.ID().String()+"/complete",
		s.token(s.adminID, settlementhttp.RoleAdmin), map[string]any{"adminNote": "paid"})

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	data := s.decode(env.Data)
	s.Equal("Completed", data["status"])
	s.NotNil(data["completedAt"])
	handler.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestCompleteWithdrawalTwiceIsConflict() {
	handler := &HandlerMock[commands.ReviewWithdrawalCommand, *withdrawal.Withdrawal]{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewInvalidTransitionError("withdrawal", withdrawal.Completed, withdrawal.Completed)).Once()
	e := s.newEcho(settlementhttp.Handlers{ReviewWithdrawal: handler})

	rec, env := s.do(e, http.MethodPut, "/api/admin/withdrawals/"+kernel.NewUUID().String()+"/complete",
		s.token(s.adminID, settlementhttp.RoleAdmin), nil)

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("withdrawal cannot move from Completed to Completed", env.Message)
}

func (s *ServerTestSuite) TestRejectWithdrawalRequiresReason() {
	handler := &HandlerMock[commands.ReviewWithdrawalCommand, *withdrawal.Withdrawal]{}
	e := s.newEcho(settlementhttp.Handlers{ReviewWithdrawal: handler})

	rec, env := s.do(e, http.MethodPut, "/api/admin/withdrawals/"+kernel.NewUUID().String()+"/reject",
		s.token(s.adminID, settlementhttp.RoleAdmin), map[string]any{"adminNote": "no reason"})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Success)
	handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestReportViolationDuplicate() {
	handler := &HandlerMock[commands.ReportViolationCommand, *violation.Violation]{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewAlreadyExistsError("violation")).Once()
	e := s.newEcho(settlementhttp.Handlers{ReportViolation: handler})

	rec, env := s.do(e, http.MethodPost, "/api/violations/report", s.token(s.customer, settlementhttp.RoleCustomer),
		map[string]any{
			"driverId":      s.driverID.String(),
			"orderId":       kernel.NewUUID().String(),
			"violationType": "LateDelivery",
			"severity":      "Low",
			"description":   "arrived two hours late",
		})

	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("violation already exists", env.Message)
}

func (s *ServerTestSuite) TestResolveViolationWithPenalty() {
	v, err := violation.NewViolation(kernel.NewUUID(), violation.Report{
		ReporterID:  s.customer,
		DriverID:    s.driverID,
		Type:        violation.DamagedGoods,
		Severity:    violation.High,
		Description: "the fridge arrived dented",
	}, time.Now().UTC())
	s.Require().NoError(err)
	resolution := violation.Resolution{Penalty: 50_000, WarningCount: 1}
	s.Require().NoError(v.Resolve(s.adminID, resolution, "confirmed by photos", time.Now().UTC()))

	handler := &HandlerMock[commands.ChangeViolationStatusCommand, *violation.Violation]{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeViolationStatusCommand) bool {
		return cmd.Status() == violation.Resolved && cmd.Resolution() == resolution &&
			cmd.ViolationID().IsEqual(v.ID())
	})).Return(v, nil).Once()
	e := s.newEcho(settlementhttp.Handlers{ChangeViolationStatus: handler})

	rec, env := s.do(e, http.MethodPut, "/api/violations/admin/"+v.ID().String()+"/status",
		s.token(s.adminID, settlementhttp.RoleAdmin), map[string]any{
			"status":       "Resolved",
			"penalty":      50_000,
			"warningCount": 1,
			"adminNotes":   "confirmed by photos",
		})

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	data := s.decode(env.Data)
	s.Equal("Resolved", data["status"])
	s.InDelta(50_000, data["penalty"], 0)
	handler.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestResolveViolationInsufficientBalance() {
	handler := &HandlerMock[commands.ChangeViolationStatusCommand, *violation.Violation]{}
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(nil, errs.NewInsufficientBalanceError(s.driverID.String(), 10_000, 50_000)).Once()
	e := s.newEcho(settlementhttp.Handlers{ChangeViolationStatus: handler})

	rec, _ := s.do(e, http.MethodPut, "/api/violations/admin/"+kernel.NewUUID().String()+"/status",
		s.token(s.adminID, settlementhttp.RoleAdmin), map[string]any{"status": "Resolved", "penalty": 50_000})

	s.Equal(http.StatusPaymentRequired, rec.Code)
}

func (s *ServerTestSuite) TestResolveViolationRejectsOverlongBan() {
	handler := &HandlerMock[commands.ChangeViolationStatusCommand, *violation.Violation]{}
	e := s.newEcho(settlementhttp.Handlers{ChangeViolationStatus: handler})

	rec, env := s.do(e, http.MethodPut, "/api/violations/admin/"+kernel.NewUUID().String()+"/status",
		s.token(s.adminID, settlementhttp.RoleAdmin),
		map[string]any{"status": "Resolved", "banDriver": true, "banDuration": 106_751_992})

	s.Equal(http.StatusBadRequest, rec.Code)
	s.False(env.Success)
	handler.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestDeliverItemReturnsPayout() {
	orderID, itemID := kernel.NewUUID(), kernel.NewUUID()
	deliver := &HandlerMock[commands.DeliverItemCommand, kernel.Money]{}
	deliver.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeliverItemCommand) bool {
		t := cmd.Target()
		return t.DriverID.IsEqual(s.driverID) && t.OrderID.IsEqual(orderID) && t.ItemID.IsEqual(itemID)
	})).Return(kernel.Money(600_000), nil).Once()
	getOrder := &HandlerMock[queries.GetOrderQuery, queries.OrderView]{}
	getOrder.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderView{ID: orderID, CustomerID: s.customer, TotalPrice: 750_000}, nil).Once()
	e := s.newEcho(settlementhttp.Handlers{DeliverItem: deliver, GetOrder: getOrder})

	rec, env := s.do(e, http.MethodPut,
		"/api/driver/orders/"+orderID.String()+"/items/"+itemID.String()+"/deliver",
		s.token(s.driverID, settlementhttp.RoleDriver), nil)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	data := s.decode(env.Data)
	s.InDelta(600_000, data["payout"], 0)
	deliver.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestGetOrderForbiddenForStranger() {
	orderID := kernel.NewUUID()
	getOrder := &HandlerMock[queries.GetOrderQuery, queries.OrderView]{}
	getOrder.On("Handle", mock.Anything, mock.Anything).
		Return(queries.OrderView{ID: orderID, CustomerID: s.customer}, nil).Once()
	e := s.newEcho(settlementhttp.Handlers{GetOrder: getOrder})

	rec, _ := s.do(e, http.MethodGet, "/api/orders/"+orderID.String(),
		s.token(kernel.NewUUID(), settlementhttp.RoleCustomer), nil)

	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerTestSuite) TestExportWithdrawals() {
	first, second := s.newWithdrawal(1_000_000), s.newWithdrawal(500_000)
	handler := &HandlerMock[queries.ListWithdrawalsQuery, queries.Page[queries.WithdrawalView]]{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListWithdrawalsQuery) bool {
		return q.Status() != nil && *q.Status() == withdrawal.Pending
	})).Return(queries.Page[queries.WithdrawalView]{
		Items: []queries.WithdrawalView{
			{ID: first.ID(), DriverID: s.driverID, RequestedAmount: 1_000_000, Status: "Pending"},
			{ID: second.ID(), DriverID: s.driverID, RequestedAmount: 500_000, Status: "Pending"},
		},
		Total: 2,
		Page:  1,
		Limit: queries.MaxPageLimit,
	}, nil).Once()
	e := s.newEcho(settlementhttp.Handlers{ListWithdrawals: handler})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/withdrawals/export?status=Pending", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(s.adminID, settlementhttp.RoleAdmin))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), "withdrawals_")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	s.Require().NoError(err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Withdrawals")
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal("ID", rows[0][0])
	s.Equal(first.ID().String(), rows[1][0])
	s.Equal("1000000", rows[1][3])
	s.Equal("500000", rows[2][3])
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/aru-nika-08/attendance-tracking-system/internal/attendance/http/dto"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

func TestSessionHandler_ValidateQRHandler(t *testing.T) {
	request := dto.ValidateQRRequest{Token: "payload.signature", Email: testEmail}

	t.Run("Success_OpensSession", func(t *testing.T) {
		h := setupTestHandlers(t)

		h.gate.On("RedeemToken", mock.Anything, request.Token, testEmail).
			Return(&attendanceUseCase.RedeemOutput{SessionID: testSessionID, Payload: testPayload()}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/api/validate-qr", request)
		h.session.ValidateQRHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ValidateQRResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.True(t, response.Valid)
		assert.Equal(t, testSessionID, response.SessionID)
	})

	t.Run("Error_TokenFailuresLookIdentical", func(t *testing.T) {
		var bodies []string
		for _, tokenErr := range []error{
			qrDomain.ErrTokenMalformed,
			qrDomain.ErrTokenBadSignature,
			qrDomain.ErrTokenExpired,
		} {
			h := setupTestHandlers(t)
			h.gate.On("RedeemToken", mock.Anything, request.Token, testEmail).Return(nil, tokenErr).Once()

			c, w := createTestContext(http.MethodPost, "/api/validate-qr", request)
			h.session.ValidateQRHandler(c)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			bodies = append(bodies, w.Body.String())
		}

		assert.Contains(t, bodies[0], "qr_rejected")
		assert.Equal(t, bodies[0], bodies[1])
		assert.Equal(t, bodies[0], bodies[2])
	})

	t.Run("Error_ValidationFailed", func(t *testing.T) {
		h := setupTestHandlers(t)

		c, w := createTestContext(http.MethodPost, "/api/validate-qr", dto.ValidateQRRequest{Token: "t"})
		h.session.ValidateQRHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		h.gate.AssertNotCalled(t, "RedeemToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_StudentActingForAnother", func(t *testing.T) {
		h := setupTestHandlers(t)

		c, w := createTestContext(http.MethodPost, "/api/validate-qr", request)
		withPrincipal(c, "b@x.edu", authDomain.RoleStudent)
		h.session.ValidateQRHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSessionHandler_GetSessionHandler(t *testing.T) {
	t.Run("Success_ReturnsOwner", func(t *testing.T) {
		h := setupTestHandlers(t)

		h.gate.On("SessionStatus", mock.Anything, testSessionID).
			Return(&qrDomain.ScanSession{ID: testSessionID, Subject: testEmail, Payload: testPayload()}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/session/"+testSessionID, nil)
		c.Params = gin.Params{{Key: "sessionId", Value: testSessionID}}
		h.session.GetSessionHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, testEmail, response.Email)
		assert.True(t, response.Valid)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		h := setupTestHandlers(t)

		h.gate.On("SessionStatus", mock.Anything, testSessionID).
			Return(nil, qrDomain.ErrScanSessionNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/session/"+testSessionID, nil)
		c.Params = gin.Params{{Key: "sessionId", Value: testSessionID}}
		h.session.GetSessionHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSessionHandler_DeleteSessionHandler(t *testing.T) {
	t.Run("Success_UnknownSessionIsNoContent", func(t *testing.T) {
		h := setupTestHandlers(t)

		h.gate.On("CancelSession", mock.Anything, testSessionID).Return(false, nil).Once()

		c, w := createTestContext(http.MethodDelete, "/api/session/"+testSessionID, nil)
		c.Params = gin.Params{{Key: "sessionId", Value: testSessionID}}
		h.session.DeleteSessionHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_StoreFailure", func(t *testing.T) {
		h := setupTestHandlers(t)

		h.gate.On("CancelSession", mock.Anything, testSessionID).Return(false, errors.New("redis down")).Once()

		c, w := createTestContext(http.MethodDelete, "/api/session/"+testSessionID, nil)
		c.Params = gin.Params{{Key: "sessionId", Value: testSessionID}}
		h.session.DeleteSessionHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSessionHandler_FaceStatusHandler(t *testing.T) {
	t.Run("Success_OpenSession", func(t *testing.T) {
		h := setupTestHandlers(t)

		h.gate.On("SessionStatus", mock.Anything, testSessionID).
			Return(&qrDomain.ScanSession{ID: testSessionID, Subject: testEmail}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/face-status/"+testSessionID, nil)
		c.Params = gin.Params{{Key: "sessionId", Value: testSessionID}}
		h.session.FaceStatusHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"valid":true,"email":"a@x.edu"}`, w.Body.String())
	})

	t.Run("Success_ClosedSessionIsInvalid", func(t *testing.T) {
		h := setupTestHandlers(t)

		h.gate.On("SessionStatus", mock.Anything, testSessionID).
			Return(nil, qrDomain.ErrScanSessionNotFound).
			Once()

		c, w := createTestContext(http.MethodGet, "/api/face-status/"+testSessionID, nil)
		c.Params = gin.Params{{Key: "sessionId", Value: testSessionID}}
		h.session.FaceStatusHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"valid":false}`, w.Body.String())
	})
}

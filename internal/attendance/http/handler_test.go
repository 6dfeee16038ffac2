package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase/mocks"
	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

const (
	testSessionID = "0123456789abcdef0123456789abcdef"
	testEmail     = "a@x.edu"
	testImage     = "data:image/jpeg;base64,aGVsbG8="
	dashboardURL  = "http://localhost:5173/dashboard"
)

type testHandlers struct {
	session    *SessionHandler
	face       *FaceHandler
	attendance *AttendanceHandler
	gate       *mocks.MockAttendanceGate
	useCase    *mocks.MockAttendanceUseCase
}

func setupTestHandlers(t *testing.T) *testHandlers {
	t.Helper()

	gin.SetMode(gin.TestMode)

	gate := &mocks.MockAttendanceGate{}
	useCase := &mocks.MockAttendanceUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Cleanup(func() {
		gate.AssertExpectations(t)
		useCase.AssertExpectations(t)
	})

	return &testHandlers{
		session:    NewSessionHandler(gate, logger),
		face:       NewFaceHandler(gate, logger),
		attendance: NewAttendanceHandler(gate, useCase, dashboardURL, logger),
		gate:       gate,
		useCase:    useCase,
	}
}

func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func withPrincipal(c *gin.Context, email string, role authDomain.Role) {
	ctx := authDomain.WithPrincipal(c.Request.Context(), &authDomain.Principal{Email: email, Role: role})
	c.Request = c.Request.WithContext(ctx)
}

func testPayload() *qrDomain.SessionPayload {
	return &qrDomain.SessionPayload{
		IssuedAtMillis: 1000,
		Nonce:          "bm9uY2U",
		Metadata: qrDomain.SessionMetadata{
			StaffID:   "S1",
			CourseID:  "C1",
			Period:    "3",
			ClassName: "CSE-A",
		},
	}
}

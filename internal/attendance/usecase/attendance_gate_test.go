package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	attendanceUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase"
	"github.com/aru-nika-08/attendance-tracking-system/internal/attendance/usecase/mocks"
	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrMocks "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase/mocks"
)

const (
	testSessionID = "0123456789abcdef0123456789abcdef"
	testSubject   = "a@x.edu"
	testImage     = "data:image/jpeg;base64,aGVsbG8="
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPayload() *qrDomain.SessionPayload {
	return &qrDomain.SessionPayload{
		IssuedAtMillis: time.Now().UnixMilli(),
		Nonce:          "abcd1234",
		Metadata: qrDomain.SessionMetadata{
			StaffID:     "S1",
			ClassName:   "CSE-A",
			CourseID:    "C1",
			SessionDate: "2026-03-02",
			Period:      "3",
		},
	}
}

func testSession() *qrDomain.ScanSession {
	return &qrDomain.ScanSession{
		ID:        testSessionID,
		Subject:   testSubject,
		Payload:   testPayload(),
		CreatedAt: time.Now().UTC(),
	}
}

type gateFixture struct {
	gate     attendanceUseCase.AttendanceGate
	verifier *qrMocks.MockTokenVerifier
	store    *qrMocks.MockSessionStore
	scorer   *mocks.MockFaceScorer
	writer   *mocks.MockAttendanceWriter
}

func setupGate(t *testing.T) *gateFixture {
	t.Helper()

	f := &gateFixture{
		verifier: &qrMocks.MockTokenVerifier{},
		store:    &qrMocks.MockSessionStore{},
		scorer:   &mocks.MockFaceScorer{},
		writer:   &mocks.MockAttendanceWriter{},
	}
	f.gate = attendanceUseCase.NewAttendanceGate(f.verifier, f.store, f.scorer, f.writer, 0.6, 0.8, discardLogger())

	t.Cleanup(func() {
		f.verifier.AssertExpectations(t)
		f.store.AssertExpectations(t)
		f.scorer.AssertExpectations(t)
		f.writer.AssertExpectations(t)
	})
	return f
}

func confidence(v float64) *float64 {
	return &v
}

func TestAttendanceGate_RedeemToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_OpensSession", func(t *testing.T) {
		f := setupGate(t)
		payload := testPayload()

		f.verifier.On("Verify", ctx, "tok").Return(payload, nil).Once()
		f.store.On("Redeem", ctx, payload, testSubject).Return(testSessionID, nil).Once()

		output, err := f.gate.RedeemToken(ctx, "tok", testSubject)
		require.NoError(t, err)
		assert.Equal(t, testSessionID, output.SessionID)
		assert.Equal(t, payload, output.Payload)
	})

	t.Run("Error_TokenRejectedCreatesNoSession", func(t *testing.T) {
		for _, tokenErr := range []error{
			qrDomain.ErrTokenMalformed,
			qrDomain.ErrTokenBadSignature,
			qrDomain.ErrTokenExpired,
		} {
			f := setupGate(t)
			f.verifier.On("Verify", ctx, "tok").Return(nil, tokenErr).Once()

			output, err := f.gate.RedeemToken(ctx, "tok", testSubject)
			assert.ErrorIs(t, err, tokenErr)
			assert.Nil(t, output)
			f.store.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Error_EmptySubject", func(t *testing.T) {
		f := setupGate(t)

		_, err := f.gate.RedeemToken(ctx, "tok", "  ")
		assert.ErrorIs(t, err, attendanceDomain.ErrInvalidSubject)
	})

	t.Run("Error_StoreFails", func(t *testing.T) {
		f := setupGate(t)
		payload := testPayload()
		storeErr := errors.New("redis down")

		f.verifier.On("Verify", ctx, "tok").Return(payload, nil).Once()
		f.store.On("Redeem", ctx, payload, testSubject).Return("", storeErr).Once()

		_, err := f.gate.RedeemToken(ctx, "tok", testSubject)
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestAttendanceGate_AuthorizeAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ClaimsSessionAndWritesOnce", func(t *testing.T) {
		f := setupGate(t)
		session := testSession()

		f.store.On("Lookup", ctx, testSessionID).Return(session, nil).Once()
		f.writer.On("Persist", ctx, mock.MatchedBy(func(e *attendanceDomain.AttendanceEvent) bool {
			return e.Subject == testSubject &&
				e.SessionID == testSessionID &&
				e.Status == attendanceDomain.StatusPresent &&
				e.Confidence == 1.0 &&
				e.MarkedBy == authDomain.SystemActor
		})).Return(nil).Once()
		f.store.On("Take", ctx, testSessionID).Return(session, nil).Once()

		authorization, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID: testSessionID,
			Subject:   testSubject,
		})
		require.NoError(t, err)
		assert.Equal(t, testSessionID, authorization.SessionID)
		assert.Equal(t, attendanceDomain.StatusPresent, authorization.Status)
		assert.NotEmpty(t, authorization.AttendanceID)
	})

	t.Run("Success_SubjectComparedCaseInsensitively", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()
		f.store.On("Take", ctx, testSessionID).Return(testSession(), nil).Once()
		f.writer.On("Persist", ctx, mock.Anything).Return(nil).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID: testSessionID,
			Subject:   "A@X.EDU",
		})
		assert.NoError(t, err)
	})

	t.Run("Success_LateConfidenceAndPrincipalAudit", func(t *testing.T) {
		f := setupGate(t)
		principalCtx := authDomain.WithPrincipal(ctx, &authDomain.Principal{
			Email: "admin@x.edu",
			Role:  authDomain.RoleAdmin,
		})

		f.store.On("Lookup", principalCtx, testSessionID).Return(testSession(), nil).Once()
		f.writer.On("Persist", principalCtx, mock.MatchedBy(func(e *attendanceDomain.AttendanceEvent) bool {
			return e.Status == attendanceDomain.StatusLate && e.MarkedBy == "admin@x.edu"
		})).Return(nil).Once()
		f.store.On("Take", principalCtx, testSessionID).Return(testSession(), nil).Once()

		authorization, err := f.gate.AuthorizeAttendance(principalCtx, &attendanceUseCase.AuthorizeInput{
			SessionID:  testSessionID,
			Subject:    testSubject,
			Confidence: confidence(0.7),
		})
		require.NoError(t, err)
		assert.Equal(t, attendanceDomain.StatusLate, authorization.Status)
		assert.Equal(t, "admin@x.edu", authorization.MarkedBy)
	})

	t.Run("Error_SessionNotFound", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(nil, qrDomain.ErrScanSessionNotFound).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID: testSessionID,
			Subject:   testSubject,
		})
		assert.ErrorIs(t, err, qrDomain.ErrScanSessionNotFound)
		f.writer.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})

	t.Run("Error_EmailMismatch", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID: testSessionID,
			Subject:   "b@x.edu",
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrEmailMismatch)
		f.writer.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
		f.store.AssertNotCalled(t, "Take", mock.Anything, mock.Anything)
	})

	t.Run("Error_LowConfidence", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID:  testSessionID,
			Subject:    testSubject,
			Confidence: confidence(0.59),
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrLowConfidence)
		f.writer.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
		f.store.AssertNotCalled(t, "Take", mock.Anything, mock.Anything)
	})

	t.Run("Error_ConfidenceOutOfRange", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID:  testSessionID,
			Subject:    testSubject,
			Confidence: confidence(1.5),
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrInvalidConfidence)
	})

	t.Run("Error_WriteFailedRestoresSession", func(t *testing.T) {
		f := setupGate(t)
		writeErr := errors.New("disk full")
		session := testSession()

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()
		f.store.On("Take", ctx, testSessionID).Return(session, nil).Once()
		f.writer.On("Persist", ctx, mock.Anything).Return(writeErr).Once()
		f.store.On("Restore", ctx, session).Return(nil).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID: testSessionID,
			Subject:   testSubject,
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrWriteFailed)
		assert.ErrorIs(t, err, writeErr)
		assert.Equal(t, attendanceDomain.ReasonWriteFailed, attendanceDomain.ReasonOf(err))
	})

	t.Run("Error_RestoreFailureKeepsWriteError", func(t *testing.T) {
		f := setupGate(t)
		session := testSession()

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()
		f.store.On("Take", ctx, testSessionID).Return(session, nil).Once()
		f.writer.On("Persist", ctx, mock.Anything).Return(errors.New("disk full")).Once()
		f.store.On("Restore", ctx, session).Return(errors.New("redis down")).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID: testSessionID,
			Subject:   testSubject,
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrWriteFailed)
	})

	t.Run("Error_ClaimLostToConcurrentCall", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()
		f.store.On("Take", ctx, testSessionID).Return(nil, qrDomain.ErrScanSessionNotFound).Once()

		_, err := f.gate.AuthorizeAttendance(ctx, &attendanceUseCase.AuthorizeInput{
			SessionID: testSessionID,
			Subject:   testSubject,
		})
		assert.ErrorIs(t, err, qrDomain.ErrScanSessionNotFound)
		f.writer.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})
}

func TestAttendanceGate_VerifyFace(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ScoresAndAuthorizes", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Twice()
		f.scorer.On("Score", ctx, []byte("hello"), testSubject).Return(0.85, nil).Once()
		f.writer.On("Persist", ctx, mock.MatchedBy(func(e *attendanceDomain.AttendanceEvent) bool {
			return e.Confidence == 0.85 && e.Status == attendanceDomain.StatusPresent
		})).Return(nil).Once()
		f.store.On("Take", ctx, testSessionID).Return(testSession(), nil).Once()

		verification, err := f.gate.VerifyFace(ctx, &attendanceUseCase.FaceInput{
			SessionID: testSessionID,
			Subject:   testSubject,
			Image:     testImage,
		})
		require.NoError(t, err)
		assert.Equal(t, 0.85, verification.Confidence)
		require.NotNil(t, verification.Authorization)
		assert.Equal(t, attendanceDomain.StatusPresent, verification.Authorization.Status)
	})

	t.Run("Error_LowConfidenceReportsScore", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Twice()
		f.scorer.On("Score", ctx, []byte("hello"), testSubject).Return(0.4, nil).Once()

		verification, err := f.gate.VerifyFace(ctx, &attendanceUseCase.FaceInput{
			SessionID: testSessionID,
			Subject:   testSubject,
			Image:     testImage,
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrLowConfidence)
		require.NotNil(t, verification)
		assert.Equal(t, 0.4, verification.Confidence)
		assert.Nil(t, verification.Authorization)
	})

	t.Run("Error_EmailMismatchSkipsScoring", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()

		_, err := f.gate.VerifyFace(ctx, &attendanceUseCase.FaceInput{
			SessionID: testSessionID,
			Subject:   "b@x.edu",
			Image:     testImage,
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrEmailMismatch)
		f.scorer.AssertNotCalled(t, "Score", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidImage", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()

		_, err := f.gate.VerifyFace(ctx, &attendanceUseCase.FaceInput{
			SessionID: testSessionID,
			Subject:   testSubject,
			Image:     "%%%",
		})
		assert.ErrorIs(t, err, attendanceDomain.ErrInvalidImage)
	})

	t.Run("Error_ScorerFails", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Lookup", ctx, testSessionID).Return(testSession(), nil).Once()
		f.scorer.On("Score", ctx, []byte("hello"), testSubject).Return(0.0, context.DeadlineExceeded).Once()

		_, err := f.gate.VerifyFace(ctx, &attendanceUseCase.FaceInput{
			SessionID: testSessionID,
			Subject:   testSubject,
			Image:     testImage,
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestAttendanceGate_MarkFromToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PersistsWithoutSession", func(t *testing.T) {
		f := setupGate(t)
		payload := testPayload()

		f.verifier.On("Verify", ctx, "tok").Return(payload, nil).Once()
		f.writer.On("Persist", ctx, mock.MatchedBy(func(e *attendanceDomain.AttendanceEvent) bool {
			return e.SessionID == "" && e.Subject == testSubject && e.Confidence == 1.0
		})).Return(nil).Once()

		authorization, err := f.gate.MarkFromToken(ctx, "tok", "A@x.edu")
		require.NoError(t, err)
		assert.Equal(t, testSubject, authorization.Subject)
		assert.Equal(t, payload, authorization.Payload)
		f.store.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_ExpiredToken", func(t *testing.T) {
		f := setupGate(t)

		f.verifier.On("Verify", ctx, "tok").Return(nil, qrDomain.ErrTokenExpired).Once()

		_, err := f.gate.MarkFromToken(ctx, "tok", testSubject)
		assert.ErrorIs(t, err, qrDomain.ErrTokenExpired)
		f.writer.AssertNotCalled(t, "Persist", mock.Anything, mock.Anything)
	})
}

func TestAttendanceGate_SessionStatusAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_SessionStatus", func(t *testing.T) {
		f := setupGate(t)
		session := testSession()

		f.store.On("Lookup", ctx, testSessionID).Return(session, nil).Once()

		result, err := f.gate.SessionStatus(ctx, testSessionID)
		require.NoError(t, err)
		assert.Equal(t, session, result)
	})

	t.Run("Success_CancelIsIdempotent", func(t *testing.T) {
		f := setupGate(t)

		f.store.On("Release", ctx, testSessionID).Return(true, nil).Once()
		f.store.On("Release", ctx, testSessionID).Return(false, nil).Once()

		removed, err := f.gate.CancelSession(ctx, testSessionID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = f.gate.CancelSession(ctx, testSessionID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

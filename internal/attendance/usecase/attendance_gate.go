package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	attendanceService "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/service"
	authDomain "github.com/aru-nika-08/attendance-tracking-system/internal/auth/domain"
	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
	qrUseCase "github.com/aru-nika-08/attendance-tracking-system/internal/qr/usecase"
)

// fullConfidence is recorded when attendance is written without a face check.
const fullConfidence = 1.0

type attendanceGate struct {
	tokenVerifier    qrUseCase.TokenVerifier
	sessionStore     qrUseCase.SessionStore
	faceScorer       attendanceService.FaceScorer
	writer           AttendanceWriter
	acceptThreshold  float64
	presentThreshold float64
	logger           *slog.Logger
	now              func() time.Time
}

// NewAttendanceGate creates an AttendanceGate. Face scores below
// acceptThreshold are rejected; scores at or above presentThreshold are
// recorded as present, the rest as late.
func NewAttendanceGate(
	tokenVerifier qrUseCase.TokenVerifier,
	sessionStore qrUseCase.SessionStore,
	faceScorer attendanceService.FaceScorer,
	writer AttendanceWriter,
	acceptThreshold, presentThreshold float64,
	logger *slog.Logger,
) AttendanceGate {
	return &attendanceGate{
		tokenVerifier:    tokenVerifier,
		sessionStore:     sessionStore,
		faceScorer:       faceScorer,
		writer:           writer,
		acceptThreshold:  acceptThreshold,
		presentThreshold: presentThreshold,
		logger:           logger,
		now:              time.Now,
	}
}

// RedeemToken verifies token and, only when it is valid, opens a scan session.
func (g *attendanceGate) RedeemToken(ctx context.Context, token, subject string) (*RedeemOutput, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, attendanceDomain.ErrInvalidSubject
	}

	payload, err := g.tokenVerifier.Verify(ctx, token)
	if err != nil {
		g.reject(attendanceDomain.StateTokenPresented, "", err)
		return nil, err
	}

	sessionID, err := g.sessionStore.Redeem(ctx, payload, subject)
	if err != nil {
		return nil, err
	}

	g.transition(attendanceDomain.StateSessionActive, sessionID)

	return &RedeemOutput{SessionID: sessionID, Payload: payload}, nil
}

// AuthorizeAttendance checks the session and the subject, claims the session
// and persists the attendance once. Concurrent calls for one session race on
// the claim and the losers get ErrScanSessionNotFound. A failed write puts
// the session back so the caller may retry.
func (g *attendanceGate) AuthorizeAttendance(ctx context.Context, input *AuthorizeInput) (*Authorization, error) {
	session, err := g.activeSession(ctx, input.SessionID, input.Subject)
	if err != nil {
		return nil, err
	}

	confidence := fullConfidence
	if input.Confidence != nil {
		confidence = *input.Confidence
		if confidence < 0 || confidence > 1 {
			return nil, attendanceDomain.ErrInvalidConfidence
		}
		if confidence < g.acceptThreshold {
			g.reject(attendanceDomain.StateSessionActive, session.ID, attendanceDomain.ErrLowConfidence)
			return nil, attendanceDomain.ErrLowConfidence
		}
	}

	claimed, err := g.sessionStore.Take(ctx, session.ID)
	if err != nil {
		g.reject(attendanceDomain.StateSessionActive, session.ID, err)
		return nil, err
	}

	g.transition(attendanceDomain.StateAuthorized, claimed.ID)

	authorization, err := g.persist(ctx, claimed.Subject, claimed.ID, claimed.Payload, confidence)
	if err != nil {
		g.reject(attendanceDomain.StateAuthorized, claimed.ID, err)
		if restoreErr := g.sessionStore.Restore(ctx, claimed); restoreErr != nil {
			g.logger.Warn("failed to restore scan session after write failure",
				slog.String("session_id", claimed.ID),
				slog.Any("error", restoreErr))
		}
		return nil, err
	}

	g.transition(attendanceDomain.StateClosed, claimed.ID)

	return authorization, nil
}

// VerifyFace checks the session owner before scoring so a mismatched caller
// never reaches the scorer.
func (g *attendanceGate) VerifyFace(ctx context.Context, input *FaceInput) (*FaceVerification, error) {
	if _, err := g.activeSession(ctx, input.SessionID, input.Subject); err != nil {
		return nil, err
	}

	image, err := attendanceService.DecodeImage(input.Image)
	if err != nil {
		return nil, err
	}

	confidence, err := g.faceScorer.Score(ctx, image, input.Subject)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to score face")
	}

	verification := &FaceVerification{Confidence: confidence}
	authorization, err := g.AuthorizeAttendance(ctx, &AuthorizeInput{
		SessionID:  input.SessionID,
		Subject:    input.Subject,
		Confidence: &confidence,
	})
	if err != nil {
		return verification, err
	}

	verification.Authorization = authorization
	return verification, nil
}

// MarkFromToken writes attendance straight from a valid token with full
// confidence and no scan session.
func (g *attendanceGate) MarkFromToken(ctx context.Context, token, subject string) (*Authorization, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, attendanceDomain.ErrInvalidSubject
	}

	payload, err := g.tokenVerifier.Verify(ctx, token)
	if err != nil {
		g.reject(attendanceDomain.StateTokenPresented, "", err)
		return nil, err
	}

	return g.persist(ctx, subject, "", payload, fullConfidence)
}

// SessionStatus returns the open scan session or ErrScanSessionNotFound.
func (g *attendanceGate) SessionStatus(ctx context.Context, sessionID string) (*qrDomain.ScanSession, error) {
	return g.sessionStore.Lookup(ctx, sessionID)
}

// CancelSession releases the scan session.
func (g *attendanceGate) CancelSession(ctx context.Context, sessionID string) (bool, error) {
	removed, err := g.sessionStore.Release(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if removed {
		g.logger.Debug("scan session cancelled", slog.String("session_id", sessionID))
	}
	return removed, nil
}

// activeSession looks the session up and checks, case-insensitively, that
// subject redeemed it.
func (g *attendanceGate) activeSession(
	ctx context.Context,
	sessionID, subject string,
) (*qrDomain.ScanSession, error) {
	session, err := g.sessionStore.Lookup(ctx, sessionID)
	if err != nil {
		g.reject(attendanceDomain.StateSessionActive, sessionID, err)
		return nil, err
	}

	if !strings.EqualFold(session.Subject, subject) {
		g.reject(attendanceDomain.StateSessionActive, sessionID, attendanceDomain.ErrEmailMismatch)
		return nil, attendanceDomain.ErrEmailMismatch
	}

	return session, nil
}

func (g *attendanceGate) persist(
	ctx context.Context,
	subject, sessionID string,
	payload *qrDomain.SessionPayload,
	confidence float64,
) (*Authorization, error) {
	event := &attendanceDomain.AttendanceEvent{
		ID:         uuid.Must(uuid.NewV7()),
		Subject:    strings.ToLower(subject),
		SessionID:  sessionID,
		Payload:    payload,
		Confidence: confidence,
		Status:     attendanceDomain.StatusForConfidence(confidence, g.acceptThreshold, g.presentThreshold),
		MarkedBy:   authDomain.ActorFromContext(ctx),
		OccurredAt: g.now().UTC(),
	}

	if err := g.writer.Persist(ctx, event); err != nil {
		if !apperrors.Is(err, attendanceDomain.ErrWriteFailed) {
			err = fmt.Errorf("%w: %w", attendanceDomain.ErrWriteFailed, err)
		}
		return nil, err
	}

	g.logger.Info("attendance recorded",
		slog.String("attendance_id", event.ID.String()),
		slog.String("session_id", sessionID),
		slog.String("status", string(event.Status)),
		slog.String("marked_by", event.MarkedBy))

	return &Authorization{
		AttendanceID: event.ID.String(),
		SessionID:    sessionID,
		Subject:      event.Subject,
		Payload:      payload,
		Confidence:   confidence,
		Status:       event.Status,
		MarkedBy:     event.MarkedBy,
	}, nil
}

func (g *attendanceGate) transition(state attendanceDomain.State, sessionID string) {
	g.logger.Debug("attendance attempt transition",
		slog.String("state", string(state)),
		slog.String("session_id", sessionID))
}

// reject logs the internal reason of a failed step. Payload contents are never logged.
func (g *attendanceGate) reject(from attendanceDomain.State, sessionID string, err error) {
	g.logger.Debug("attendance attempt rejected",
		slog.String("state", string(attendanceDomain.StateRejected)),
		slog.String("from", string(from)),
		slog.String("session_id", sessionID),
		slog.String("reason", attendanceDomain.ReasonOf(err).String()))
}

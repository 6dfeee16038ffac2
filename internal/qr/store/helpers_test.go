package store

import (
	"errors"
	"sync"
	"time"

	qrDomain "github.com/aru-nika-08/attendance-tracking-system/internal/qr/domain"
)

// scriptedRandom returns the configured session ids in order.
type scriptedRandom struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (r *scriptedRandom) Nonce() (string, error) {
	return "nonce123", nil
}

func (r *scriptedRandom) SessionID() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	if len(r.ids) == 0 {
		return "", errors.New("no more ids")
	}
	id := r.ids[0]
	if len(r.ids) > 1 {
		r.ids = r.ids[1:]
	}
	return id, nil
}

func payloadIssuedAt(issued time.Time) *qrDomain.SessionPayload {
	return &qrDomain.SessionPayload{
		IssuedAtMillis: issued.UnixMilli(),
		Nonce:          "Xy12Ab34",
		Metadata: qrDomain.SessionMetadata{
			StaffID:  "S1",
			CourseID: "C1",
			Period:   "3",
		},
	}
}

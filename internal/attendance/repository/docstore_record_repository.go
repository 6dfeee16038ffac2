package repository

import (
	"context"
	"io"
	"strings"
	"time"

	"gocloud.dev/docstore"
	_ "gocloud.dev/docstore/memdocstore"

	attendanceDomain "github.com/aru-nika-08/attendance-tracking-system/internal/attendance/domain"
	apperrors "github.com/aru-nika-08/attendance-tracking-system/internal/errors"
)

// OpenCollection opens the attendance document collection at url,
// e.g. "mem://attendance/id" or "mem://attendance/id?filename=attendance.db".
func OpenCollection(ctx context.Context, url string) (*docstore.Collection, error) {
	coll, err := docstore.OpenCollection(ctx, url)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open attendance collection")
	}
	return coll, nil
}

// DocstoreAttendanceRecordRepository implements attendance document
// persistence on a gocloud.dev/docstore collection keyed by "id".
type DocstoreAttendanceRecordRepository struct {
	coll *docstore.Collection
}

// Create stores a new attendance document.
func (d *DocstoreAttendanceRecordRepository) Create(
	ctx context.Context,
	record *attendanceDomain.AttendanceRecord,
) error {
	if err := d.coll.Create(ctx, record); err != nil {
		return apperrors.Wrap(err, "failed to create attendance record")
	}
	return nil
}

// sinceEpoch bounds the timestamp so it can be ordered on; docstore only
// orders a filtered query by a field that is also filtered on.
var sinceEpoch = time.Unix(0, 0).UTC()

// List retrieves all attendance documents, newest first.
func (d *DocstoreAttendanceRecordRepository) List(ctx context.Context) ([]*attendanceDomain.AttendanceRecord, error) {
	query := d.coll.Query().
		Where("timestamp", ">=", sinceEpoch).
		OrderBy("timestamp", docstore.Descending)

	return d.collect(ctx, query)
}

// ListByEmail retrieves a student's attendance documents, newest first.
func (d *DocstoreAttendanceRecordRepository) ListByEmail(
	ctx context.Context,
	email string,
) ([]*attendanceDomain.AttendanceRecord, error) {
	query := d.coll.Query().
		Where("email", "=", strings.ToLower(email)).
		Where("timestamp", ">=", sinceEpoch).
		OrderBy("timestamp", docstore.Descending)

	return d.collect(ctx, query)
}

func (d *DocstoreAttendanceRecordRepository) collect(
	ctx context.Context,
	query *docstore.Query,
) ([]*attendanceDomain.AttendanceRecord, error) {
	iter := query.Get(ctx)
	defer iter.Stop()

	records := make([]*attendanceDomain.AttendanceRecord, 0)
	for {
		var record attendanceDomain.AttendanceRecord
		err := iter.Next(ctx, &record)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list attendance records")
		}
		records = append(records, &record)
	}

	return records, nil
}

// NewDocstoreAttendanceRecordRepository creates a document repository on coll.
func NewDocstoreAttendanceRecordRepository(coll *docstore.Collection) *DocstoreAttendanceRecordRepository {
	return &DocstoreAttendanceRecordRepository{coll: coll}
}
